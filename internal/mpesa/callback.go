package mpesa

// CallbackEnvelope is the JSON envelope the provider posts after an STK push
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"` // The actual result payload
	} `json:"Body"`
}

// StkCallback carries the push-payment result
type StkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"` // Matches the push acknowledgement
	CheckoutRequestID string `json:"CheckoutRequestID"` // Matches the push acknowledgement
	ResultCode        int    `json:"ResultCode"`        // 0 means the customer paid
	ResultDesc        string `json:"ResultDesc"`        // Human-readable result text
	CallbackMetadata  struct {
		Item []MetadataItem `json:"Item"` // Name/value pairs, only present on success
	} `json:"CallbackMetadata"`
}

// MetadataItem is one name/value pair from the callback metadata
type MetadataItem struct {
	Name  string `json:"Name"`  // Field name, e.g. MpesaReceiptNumber
	Value any    `json:"Value"` // String or number depending on the field
}

// MetadataValue looks a field up by name in the callback metadata
func (s *StkCallback) MetadataValue(name string) any {
	for _, item := range s.CallbackMetadata.Item {
		// Return the first matching field
		if item.Name == name {
			return item.Value
		}
	}
	return nil // Field not present
}

// C2BConfirmation is the provider's customer-to-business confirmation payload
type C2BConfirmation struct {
	TransactionType   string `json:"TransactionType"`   // e.g. Pay Bill
	TransID           string `json:"TransID"`           // Provider transaction ID
	TransTime         string `json:"TransTime"`         // YYYYMMDDHHMMSS
	TransAmount       string `json:"TransAmount"`       // Amount as a string
	BusinessShortCode string `json:"BusinessShortCode"` // Receiving short code
	BillRefNumber     string `json:"BillRefNumber"`     // Account the customer entered
	InvoiceNumber     string `json:"InvoiceNumber"`     // Optional invoice reference
	OrgAccountBalance string `json:"OrgAccountBalance"` // Balance after the payment
	ThirdPartyTransID string `json:"ThirdPartyTransID"` // Optional partner reference
	MSISDN            string `json:"MSISDN"`            // Paying phone, masked
}

// C2BResult is the answer validation/confirmation hooks must return
type C2BResult struct {
	ResultCode int    `json:"ResultCode"` // 0 accepts, anything else rejects
	ResultDesc string `json:"ResultDesc"` // Short result text
}
