package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// PaymentSession describes an outbound gateway checkout the frontend should
// redirect the customer to
type PaymentSession struct {
	PaymentURL    string `json:"payment_url"`
	TransactionID string `json:"transaction_id"`
}

// SSLCommerzOrder carries the fields of one SSLCommerz checkout session
type SSLCommerzOrder struct {
	TotalAmount     float64
	Currency        string
	TranID          string
	SuccessURL      string
	FailURL         string
	CancelURL       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ProductName     string
	ProductCategory string
}

// SSLCommerzGateway builds SSLCommerz checkout sessions and validation calls
type SSLCommerzGateway struct {
	StoreID       string
	StorePassword string
	IsLive        bool
	client        *resty.Client
}

func NewSSLCommerzGateway(storeID, storePassword string, isLive bool) *SSLCommerzGateway {
	return &SSLCommerzGateway{
		StoreID:       storeID,
		StorePassword: storePassword,
		IsLive:        isLive,
		client:        resty.New(),
	}
}

func (g *SSLCommerzGateway) baseURL() string {
	if g.IsLive {
		return "https://securepay.sslcommerz.com"
	}
	return "https://sandbox.sslcommerz.com"
}

// GenerateSession builds the hosted-checkout redirect URL for an order. The
// gateway accepts the session parameters on the query string, so no outbound
// call is needed at initiation time.
func (g *SSLCommerzGateway) GenerateSession(order SSLCommerzOrder) PaymentSession {
	params := url.Values{}
	params.Set("store_id", g.StoreID)
	params.Set("store_passwd", g.StorePassword)
	params.Set("total_amount", fmt.Sprintf("%.2f", order.TotalAmount))
	params.Set("currency", order.Currency)
	params.Set("tran_id", order.TranID)
	params.Set("success_url", order.SuccessURL)
	params.Set("fail_url", order.FailURL)
	params.Set("cancel_url", order.CancelURL)
	params.Set("cus_name", order.CustomerName)
	params.Set("cus_email", order.CustomerEmail)
	params.Set("cus_phone", order.CustomerPhone)
	params.Set("product_name", order.ProductName)
	params.Set("product_category", order.ProductCategory)
	params.Set("product_profile", "general")

	return PaymentSession{
		PaymentURL:    fmt.Sprintf("%s/gwprocess/v4/api.php?%s", g.baseURL(), params.Encode()),
		TransactionID: order.TranID,
	}
}

// ValidatePayment queries the SSLCommerz validation API for a completed
// transaction. Returns the raw gateway status string.
func (g *SSLCommerzGateway) ValidatePayment(tranID, valID string) (string, error) {
	resp, err := g.client.R().
		SetQueryParams(map[string]string{
			"val_id":       valID,
			"store_id":     g.StoreID,
			"store_passwd": g.StorePassword,
			"format":       "json",
		}).
		Get(g.baseURL() + "/validator/api/validationserverAPI.php")
	if err != nil {
		return "", err
	}

	var body struct {
		Status string `json:"status"`
		TranID string `json:"tran_id"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", err
	}
	if body.TranID != "" && body.TranID != tranID {
		return "", fmt.Errorf("validation response for unexpected transaction %s", body.TranID)
	}
	return body.Status, nil
}

// BkashGateway drives the bKash tokenized checkout API
type BkashGateway struct {
	AppKey    string
	AppSecret string
	Username  string
	Password  string
	IsLive    bool
	client    *resty.Client
}

func NewBkashGateway(appKey, appSecret, username, password string, isLive bool) *BkashGateway {
	return &BkashGateway{
		AppKey:    appKey,
		AppSecret: appSecret,
		Username:  username,
		Password:  password,
		IsLive:    isLive,
		client:    resty.New(),
	}
}

func (g *BkashGateway) baseURL() string {
	if g.IsLive {
		return "https://tokenized.pay.bka.sh"
	}
	return "https://tokenized.sandbox.bka.sh"
}

// GrantToken obtains a checkout access token
func (g *BkashGateway) GrantToken() (string, error) {
	resp, err := g.client.R().
		SetHeaders(map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
			"username":     g.Username,
			"password":     g.Password,
		}).
		SetBody(map[string]string{
			"app_key":    g.AppKey,
			"app_secret": g.AppSecret,
		}).
		Post(g.baseURL() + "/v1.2.0-beta/tokenized/checkout/token/grant")
	if err != nil {
		return "", err
	}

	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", err
	}
	if body.IDToken == "" {
		return "", fmt.Errorf("bKash token grant failed: %s", resp.String())
	}
	return body.IDToken, nil
}

// CreatePayment creates a tokenized checkout payment and returns the bKash
// redirect URL
func (g *BkashGateway) CreatePayment(amount float64, currency, invoiceNumber, callbackURL string) (string, error) {
	token, err := g.GrantToken()
	if err != nil {
		return "", err
	}

	resp, err := g.client.R().
		SetHeaders(map[string]string{
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"Authorization": "Bearer " + token,
			"X-APP-Key":     g.AppKey,
		}).
		SetBody(map[string]interface{}{
			"amount":                fmt.Sprintf("%.2f", amount),
			"currency":              currency,
			"intent":                "sale",
			"merchantInvoiceNumber": invoiceNumber,
			"callbackURL":           callbackURL,
		}).
		Post(g.baseURL() + "/v1.2.0-beta/tokenized/checkout/payment/create")
	if err != nil {
		return "", err
	}

	var body struct {
		BkashURL string `json:"bkashURL"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", err
	}
	if body.BkashURL == "" {
		log.Printf("[BKASH] Payment create returned no redirect URL: %s", resp.String())
		return "", fmt.Errorf("bKash payment creation failed")
	}
	return body.BkashURL, nil
}
