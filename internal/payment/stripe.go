package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.stripe.com"

// StripeGateway creates payment intents through Stripe's REST API.
type StripeGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewStripeGateway builds a gateway for the given secret key. baseURL is
// normally empty; tests point it at a local server.
func NewStripeGateway(secretKey, baseURL string) *StripeGateway {
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &StripeGateway{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", &IntentError{Message: "amount must be positive"}
	}
	if currency == "" {
		return "", &IntentError{Message: "currency is required"}
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(MinorUnits(amount), 10))
	form.Set("currency", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &IntentError{Message: "could not build request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := g.client.Do(req)
	if err != nil {
		return "", &IntentError{Message: "payment processor unreachable", Cause: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", &IntentError{Message: "reading processor response", Cause: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &IntentError{Message: errorMessage(body, res.StatusCode)}
	}

	var out struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &IntentError{Message: "malformed processor response", Cause: err}
	}
	if out.ClientSecret == "" {
		return "", &IntentError{Message: "processor returned no client secret"}
	}
	return out.ClientSecret, nil
}

func errorMessage(body []byte, status int) string {
	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Error.Message != "" {
		return out.Error.Message
	}
	return fmt.Sprintf("processor rejected the request (status %d)", status)
}
