package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stkCallback builds a provider callback envelope
func stkCallback(resultCode int) map[string]any {
	cb := map[string]any{
		"MerchantRequestID": "29115-34620561-1",
		"CheckoutRequestID": "ws_CO_191220191020363925",
		"ResultCode":        resultCode,
		"ResultDesc":        "The service request is processed successfully.",
	}
	if resultCode == 0 {
		cb["CallbackMetadata"] = map[string]any{
			"Item": []map[string]any{
				{"Name": "Amount", "Value": 100.0},
				{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
				{"Name": "PhoneNumber", "Value": 254712345678},
			},
		}
	} else {
		cb["ResultDesc"] = "Request cancelled by user"
	}
	return map[string]any{"Body": map[string]any{"stkCallback": cb}}
}

func TestMpesaCallback_Success(t *testing.T) {
	r, _ := newRouter()
	r.POST("/mpesa/callback", MpesaCallbackHandler())

	w := doJSON(r, http.MethodPost, "/mpesa/callback", "", stkCallback(0))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeBody(t, w)["success"])
}

func TestMpesaCallback_Failure(t *testing.T) {
	r, _ := newRouter()
	r.POST("/mpesa/callback", MpesaCallbackHandler())

	w := doJSON(r, http.MethodPost, "/mpesa/callback", "", stkCallback(1032))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
}

func TestMpesaCallback_MalformedEnvelope(t *testing.T) {
	r, _ := newRouter()
	r.POST("/mpesa/callback", MpesaCallbackHandler())

	w := doJSON(r, http.MethodPost, "/mpesa/callback", "", map[string]any{"unexpected": "shape"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentConfirmation_Acknowledges(t *testing.T) {
	r, _ := newRouter()
	r.POST("/payment/confirmation", PaymentConfirmationHandler())

	body := map[string]any{
		"TransactionType":   "Pay Bill",
		"TransID":           "RKTQDM7W6S",
		"TransTime":         "20191122063845",
		"TransAmount":       "10",
		"BusinessShortCode": "600638",
		"MSISDN":            "2547***********",
	}
	w := doJSON(r, http.MethodPost, "/payment/confirmation", "", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["ResultCode"])
}

func TestPaymentValidation_AcceptsAll(t *testing.T) {
	r, _ := newRouter()
	r.POST("/payment/validation", PaymentValidationHandler())

	w := doJSON(r, http.MethodPost, "/payment/validation", "", map[string]any{"TransID": "RKTQDM7W6S"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["ResultCode"])
}
