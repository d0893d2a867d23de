package mpesa

import (
	"bytes"            // Request body buffer
	"context"          // Request-scoped cancellation
	"encoding/base64"  // Basic auth and password derivation
	"encoding/json"    // JSON encoding/decoding
	"errors"           // Sentinel errors
	"fmt"              // Error wrapping
	"net/http"         // HTTP client
	"strings"          // Phone number normalization
	"time"             // Timestamp derivation and client timeout

	"eshop/internal/config" // Provider credentials
)

// ErrNoToken is returned when the OAuth endpoint answers without an access token
var ErrNoToken = errors.New("mpesa: no access token in response")

// Client talks to the Daraja API: OAuth token fetch and STK push.
// A token is fetched per call, matching the provider's short token lifetime.
type Client struct {
	consumerKey    string       // OAuth consumer key
	consumerSecret string       // OAuth consumer secret
	shortCode      string       // Business short code
	passKey        string       // STK push pass key
	callbackURL    string       // URL the provider posts the result to
	baseURL        string       // API base URL, sandbox by default
	httpClient     *http.Client // Shared HTTP client
}

// NewClient builds a Daraja client from the loaded configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		consumerKey:    cfg.MpesaConsumerKey,                    // OAuth consumer key
		consumerSecret: cfg.MpesaConsumerSecret,                 // OAuth consumer secret
		shortCode:      cfg.MpesaShortCode,                      // Business short code
		passKey:        cfg.MpesaPassKey,                        // STK push pass key
		callbackURL:    cfg.MpesaCallbackURL,                    // Result callback URL
		baseURL:        cfg.MpesaBaseURL,                        // API base URL
		httpClient:     &http.Client{Timeout: 30 * time.Second}, // Bounded request time
	}
}

// tokenResponse is the OAuth endpoint's answer
type tokenResponse struct {
	AccessToken string `json:"access_token"` // Bearer token for API calls
	ExpiresIn   string `json:"expires_in"`   // Lifetime in seconds, unused
}

// Token fetches a bearer token using Basic auth from the consumer credentials
func (c *Client) Token(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err // Return error if the request cannot be built
	}
	// Basic auth: base64(consumerKey:consumerSecret)
	auth := base64.StdEncoding.EncodeToString([]byte(c.consumerKey + ":" + c.consumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req) // Execute the request
	if err != nil {
		return "", fmt.Errorf("mpesa: token request: %w", err)
	}
	defer resp.Body.Close() // Always release the body

	var tok tokenResponse // Decode the token payload
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("mpesa: decode token response: %w", err)
	}
	// The sandbox answers 200 with an empty body on bad credentials
	if tok.AccessToken == "" {
		return "", ErrNoToken
	}
	return tok.AccessToken, nil // Bearer token for the STK push call
}

// STKPushRequest is the JSON body of a push-payment request
type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"` // Business short code
	Password          string `json:"Password"`          // base64(shortcode+passkey+timestamp)
	Timestamp         string `json:"Timestamp"`         // YYYYMMDDHHMMSS
	TransactionType   string `json:"TransactionType"`   // Always CustomerPayBillOnline
	Amount            int    `json:"Amount"`            // Whole currency units
	PartyA            string `json:"PartyA"`            // Paying phone in 254 format
	PartyB            string `json:"PartyB"`            // Business short code again
	PhoneNumber       string `json:"PhoneNumber"`       // Phone that receives the prompt
	CallBackURL       string `json:"CallBackURL"`       // Result callback URL
	AccountReference  string `json:"AccountReference"`  // Shown on the customer's statement
	TransactionDesc   string `json:"TransactionDesc"`   // Free-text description
}

// STKPushResponse is the provider's synchronous acknowledgement
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`   // Provider-side request ID
	CheckoutRequestID   string `json:"CheckoutRequestID"`   // ID the callback correlates on
	ResponseCode        string `json:"ResponseCode"`        // "0" means accepted for processing
	ResponseDescription string `json:"ResponseDescription"` // Human-readable acceptance text
	CustomerMessage     string `json:"CustomerMessage"`     // Text shown to the customer
	ErrorCode           string `json:"errorCode,omitempty"`    // Set on rejection
	ErrorMessage        string `json:"errorMessage,omitempty"` // Set on rejection
}

// STKPush sends a push-payment prompt to the given phone for the given amount.
// The password is derived from the short code, pass key and a second-resolution
// timestamp, exactly as the provider requires.
func (c *Client) STKPush(ctx context.Context, phone string, amount int) (*STKPushResponse, error) {
	token, err := c.Token(ctx) // Fresh bearer token per call
	if err != nil {
		return nil, err // Return error if the token fetch fails
	}

	timestamp := time.Now().Format("20060102150405") // YYYYMMDDHHMMSS
	// Password: base64(shortcode + passkey + timestamp)
	password := base64.StdEncoding.EncodeToString([]byte(c.shortCode + c.passKey + timestamp))

	body := STKPushRequest{
		BusinessShortCode: c.shortCode,             // Business short code
		Password:          password,                // Derived password
		Timestamp:         timestamp,               // Matching timestamp
		TransactionType:   "CustomerPayBillOnline", // Pay-bill push
		Amount:            amount,                  // Amount in whole units
		PartyA:            FormatPhone(phone),      // Paying phone
		PartyB:            c.shortCode,             // Receiving short code
		PhoneNumber:       FormatPhone(phone),      // Prompted phone
		CallBackURL:       c.callbackURL,           // Result callback
		AccountReference:  "E-Shop Checkout",       // Statement reference
		TransactionDesc:   "Payment for Order",     // Description
	}
	payload, err := json.Marshal(body) // Encode the request body
	if err != nil {
		return nil, err // Return error if encoding fails
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(payload))
	if err != nil {
		return nil, err // Return error if the request cannot be built
	}
	req.Header.Set("Authorization", "Bearer "+token)   // Bearer token
	req.Header.Set("Content-Type", "application/json") // JSON body

	resp, err := c.httpClient.Do(req) // Execute the request
	if err != nil {
		return nil, fmt.Errorf("mpesa: stk push request: %w", err)
	}
	defer resp.Body.Close() // Always release the body

	var out STKPushResponse // Decode the acknowledgement
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("mpesa: decode stk push response: %w", err)
	}
	return &out, nil // Provider acknowledgement, success or rejection
}

// FormatPhone converts a local 07xx number into the 254 format the provider requires
func FormatPhone(phone string) string {
	phone = strings.TrimSpace(phone) // Drop surrounding whitespace
	if strings.HasPrefix(phone, "0") {
		return "254" + phone[1:] // Replace the leading zero with the country code
	}
	if strings.HasPrefix(phone, "+") {
		return phone[1:] // Strip a leading plus
	}
	return phone // Already in international format
}
