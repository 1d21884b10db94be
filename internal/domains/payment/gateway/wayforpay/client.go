package wayforpay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoPaymentURL is returned when the gateway answers without a redirect
// URL; the caller maps it to a 502.
var ErrNoPaymentURL = fmt.Errorf("wayforpay: no payment url in response")

// Client talks to the WayForPay hosted-checkout API.
type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Config() *Config {
	return c.config
}

// CreatePayment signs the order and exchanges it for a hosted-checkout URL.
// behavior=offline makes the gateway answer with JSON instead of redirecting.
func (c *Client) CreatePayment(ctx context.Context, order *PaymentOrder) (string, error) {
	form := url.Values{}
	form.Set("merchantAccount", c.config.MerchantAccount)
	form.Set("merchantAuthType", "SimpleSignature")
	form.Set("merchantDomainName", c.config.DomainName)
	form.Set("merchantSignature", SignPurchase(c.config, order))
	form.Set("orderReference", order.OrderReference)
	form.Set("orderDate", strconv.FormatInt(order.OrderDate, 10))
	form.Set("amount", order.Amount.StringFixed(2))
	form.Set("currency", order.Currency)

	for _, p := range order.Products {
		form.Add("productName[]", sanitizeProductName(p.Name))
		form.Add("productPrice[]", p.Price.StringFixed(2))
		form.Add("productCount[]", strconv.Itoa(p.Count))
	}

	form.Set("clientFirstName", order.ClientName)
	form.Set("clientPhone", order.ClientPhone)
	form.Set("clientEmail", order.ClientEmail)
	form.Set("defaultPaymentSystem", "card")
	form.Set("returnUrl", c.config.ReturnURL)
	form.Set("serviceUrl", c.config.ServiceURL)

	if order.OrderTimeout > 0 {
		form.Set("orderTimeout", strconv.Itoa(order.OrderTimeout))
	}

	endpoint := c.config.APIURL + "/pay?behavior=offline"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}

	if result.URL == "" {
		return "", ErrNoPaymentURL
	}

	return result.URL, nil
}
