package api

import (
	"net/http"             // HTTP status codes
	"eshop/internal/mpesa" // Daraja client and payload types

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// StkPushRequest asks for a payment prompt on the customer's phone
type StkPushRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"` // Paying phone
	Amount      int    `json:"amount" binding:"required,gt=0"` // Amount in whole units
}

// StkPushHandler submits a push-payment request for the authenticated user's
// checkout and proxies the provider's acknowledgement back to the client.
func StkPushHandler(client *mpesa.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StkPushRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and amount are required"})
			return
		}
		// Submit the push request; a fresh token is fetched inside
		resp, err := client.STKPush(c.Request.Context(), req.PhoneNumber, req.Amount)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"phone": req.PhoneNumber, // Target phone
				"error": err.Error(),     // Error message
			}).Error("STK push failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, resp) // The provider's acknowledgement
	}
}

// MpesaCallbackHandler receives the asynchronous push-payment result. A
// successful result is parsed and logged; it is not reconciled to an order.
func MpesaCallbackHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var envelope mpesa.CallbackEnvelope // Bind the provider's envelope
		if err := c.ShouldBindJSON(&envelope); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid callback data"})
			return
		}
		cb := envelope.Body.StkCallback // The actual result
		// An empty CheckoutRequestID means the envelope was malformed
		if cb.CheckoutRequestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid callback data"})
			return
		}
		// Non-zero result codes are failed or cancelled payments
		if cb.ResultCode != 0 {
			logrus.WithFields(logrus.Fields{
				"checkout_request_id": cb.CheckoutRequestID, // Correlation ID
				"result_code":         cb.ResultCode,        // Provider result code
				"result_desc":         cb.ResultDesc,        // Provider result text
			}).Error("Payment failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": cb.ResultDesc})
			return
		}
		// Log the parsed transaction
		logrus.WithFields(logrus.Fields{
			"merchant_request_id": cb.MerchantRequestID,                   // Provider request ID
			"checkout_request_id": cb.CheckoutRequestID,                   // Correlation ID
			"receipt":             cb.MetadataValue("MpesaReceiptNumber"), // Provider receipt
			"amount":              cb.MetadataValue("Amount"),             // Paid amount
			"phone":               cb.MetadataValue("PhoneNumber"),        // Paying phone
		}).Info("Payment successful")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment processed"})
	}
}

// PaymentValidationHandler is the C2B validation hook: every payment is accepted
func PaymentValidationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any // The provider's validation payload
		_ = c.ShouldBindJSON(&payload)
		// Log the request for traceability
		logrus.WithFields(logrus.Fields{
			"payload": payload, // Raw validation payload
		}).Info("Payment validation request")
		c.JSON(http.StatusOK, mpesa.C2BResult{ResultCode: 0, ResultDesc: "Success"}) // Accept
	}
}

// PaymentConfirmationHandler is the C2B confirmation hook: the transaction is
// logged and acknowledged.
func PaymentConfirmationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tx mpesa.C2BConfirmation // Bind the confirmation payload
		if err := c.ShouldBindJSON(&tx); err != nil {
			c.JSON(http.StatusOK, mpesa.C2BResult{ResultCode: 1, ResultDesc: "Error processing request"})
			return
		}
		// Log the confirmed transaction
		logrus.WithFields(logrus.Fields{
			"trans_id":   tx.TransID,       // Provider transaction ID
			"amount":     tx.TransAmount,   // Paid amount
			"msisdn":     tx.MSISDN,        // Paying phone
			"bill_ref":   tx.BillRefNumber, // Account reference
			"trans_time": tx.TransTime,     // Provider timestamp
		}).Info("Payment confirmation received")
		c.JSON(http.StatusOK, mpesa.C2BResult{ResultCode: 0, ResultDesc: "Success"}) // Acknowledge
	}
}
