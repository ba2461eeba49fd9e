package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"net/http"
	"strings"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/pkg/clients"
	"go.uber.org/zap"
)

const maxNotificationBody = 64 << 10

type Pally struct {
	apiKey string
	apiURL string
	shopID string
	client clients.HTTPClientI
}

func NewPally(cfg config.Pally, client clients.HTTPClientI) *Pally {
	return &Pally{
		apiKey: cfg.APIKey,
		apiURL: cfg.APIURL,
		shopID: cfg.ShopID,
		client: client,
	}
}

func (p *Pally) System() domain.PaymentSystem { return domain.PaymentSystemPally }

type pallyPayload struct {
	OrderID   string      `json:"order_id"`
	Amount    json.Number `json:"amount"`
	Status    string      `json:"status"`
	PaymentID string      `json:"payment_id"`
	Signature string      `json:"signature"`
}

// ParseNotification accepts a JSON or form body and checks
// MD5(amount:order_id:api_key). The amount is in kopecks.
func (p *Pally) ParseNotification(r *http.Request) (domain.Notification, error) {
	if p.apiKey == "" {
		return nil, domain.ErrProviderNotConfigured
	}

	var payload pallyPayload
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxNotificationBody))
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		payload = pallyPayload{
			OrderID:   firstOf(r.Form, "order_id"),
			Amount:    json.Number(firstOf(r.Form, "amount")),
			Status:    firstOf(r.Form, "status"),
			PaymentID: firstOf(r.Form, "payment_id"),
			Signature: firstOf(r.Form, "signature"),
		}
	}

	amount := strings.TrimSpace(payload.Amount.String())
	if payload.OrderID == "" || amount == "" || payload.Signature == "" {
		return nil, domain.ErrMissingField
	}
	if !SignatureMatches(Signature(amount, payload.OrderID, p.apiKey), payload.Signature) {
		return nil, domain.ErrInvalidSignature
	}

	return domain.PallyNotification{
		OrderID:   payload.OrderID,
		Amount:    amount,
		Status:    strings.ToLower(strings.TrimSpace(payload.Status)),
		PaymentID: payload.PaymentID,
		Signature: payload.Signature,
	}, nil
}

type pallyBillRequest struct {
	Amount      int64  `json:"amount"`
	OrderID     string `json:"order_id"`
	ShopID      string `json:"shop_id,omitempty"`
	Description string `json:"description"`
	SuccessURL  string `json:"success_url"`
	FailURL     string `json:"fail_url"`
}

type pallyBillResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		URL string `json:"url"`
	} `json:"data"`
}

// PaymentURL creates a bill through the Pally API.
func (p *Pally) PaymentURL(_ context.Context, order *domain.Order, returnURL string) (string, error) {
	if p.apiKey == "" {
		return "", domain.ErrProviderNotConfigured
	}

	body, err := json.Marshal(pallyBillRequest{
		Amount:      int64(math.Round(order.Amount * 100)),
		OrderID:     order.ID,
		ShopID:      p.shopID,
		Description: "Пополнение баланса Jobs-App",
		SuccessURL:  returnURL,
		FailURL:     strings.Replace(returnURL, "success", "fail", 1),
	})
	if err != nil {
		return "", err
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+p.apiKey)
	headers.Set("Content-Type", "application/json")

	zap.L().Debug("creating pally bill", zap.String("order_id", order.ID), zap.Float64("amount", order.Amount))
	status, respBody, err := p.client.Post(p.apiURL+"/api/v1/bill/create", headers, body)
	if err != nil {
		return "", fmt.Errorf("pally request failed: %w", err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", fmt.Errorf("pally responded with status %d", status)
	}

	var resp pallyBillResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("can't parse pally response: %w", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.URL == "" {
		return "", fmt.Errorf("pally rejected bill: %s", string(respBody))
	}
	return resp.Data.URL, nil
}

func (p *Pally) PlaceholderURL(order *domain.Order) string {
	return fmt.Sprintf("https://demo-payment.pally.info?amount=%s&order=%s", formatAmount(order.Amount), order.ID)
}
