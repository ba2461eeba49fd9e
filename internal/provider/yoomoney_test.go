package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yoomoneyForm(hash string) url.Values {
	return url.Values{
		"notification_type": {"card-incoming"},
		"operation_id":      {"op-1"},
		"amount":            {"490.00"},
		"withdraw_amount":   {"500.00"},
		"currency":          {"643"},
		"datetime":          {"2024-12-01T10:00:00Z"},
		"sender":            {""},
		"codepro":           {"false"},
		"label":             {"ord-1"},
		"sha1_hash":         {hash},
	}
}

func TestYooMoney_ParseNotification(t *testing.T) {
	p := NewYooMoney(config.YooMoney{Receiver: "4100", NotificationSecret: "ysecret"})

	tests := []struct {
		name        string
		form        url.Values
		expectedErr error
	}{
		{
			name: "Valid notification",
			form: yoomoneyForm("b18f431cdcb6d598661d2ce7003aadf7d95b8121"),
		},
		{
			name:        "Wrong hash",
			form:        yoomoneyForm("0000431cdcb6d598661d2ce7003aadf7d95b8121"),
			expectedErr: domain.ErrInvalidSignature,
		},
		{
			name: "Missing label",
			form: func() url.Values {
				f := yoomoneyForm("b18f431cdcb6d598661d2ce7003aadf7d95b8121")
				f.Del("label")
				return f
			}(),
			expectedErr: domain.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/webhooks/yoomoney", strings.NewReader(tt.form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			n, err := p.ParseNotification(r)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderKey{ID: "ord-1"}, n.OrderKey())
			assert.Equal(t, "op-1", n.ExternalID())
			assert.InDelta(t, 500.0, n.AssertedAmount(), 0.001)
			assert.True(t, n.Succeeded())
		})
	}
}

func TestYooMoney_PaymentURL(t *testing.T) {
	p := NewYooMoney(config.YooMoney{Receiver: "4100"})
	order := &domain.Order{ID: "ord-1", Amount: 500}

	raw, err := p.PaymentURL(context.Background(), order, "https://app.test/payment-success")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "4100", q.Get("receiver"))
	assert.Equal(t, "shop", q.Get("quickpay-form"))
	assert.Equal(t, "500.00", q.Get("sum"))
	assert.Equal(t, "ord-1", q.Get("label"))
	assert.Equal(t, "https://app.test/payment-success", q.Get("successURL"))

	_, err = NewYooMoney(config.YooMoney{}).PaymentURL(context.Background(), order, "")
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
	assert.Equal(t, "https://demo-payment.yoomoney.ru?sum=500.00&label=ord-1", p.PlaceholderURL(order))
}
