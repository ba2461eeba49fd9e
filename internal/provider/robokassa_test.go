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

const validRobokassaSignature = "11450549085DC1824F1D027C1ABAEB8F"

func TestRobokassa_ParseNotification(t *testing.T) {
	p := NewRobokassa(config.Robokassa{Login: "shop", Password1: "secret1", Password2: "secret2"})

	tests := []struct {
		name        string
		request     func() *http.Request
		expectedErr error
		expected    domain.Notification
	}{
		{
			name: "Valid form body",
			request: func() *http.Request {
				body := url.Values{"OutSum": {"500.000000"}, "InvId": {"42"}, "SignatureValue": {validRobokassaSignature}}
				r := httptest.NewRequest(http.MethodPost, "/api/webhooks/robokassa", strings.NewReader(body.Encode()))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			},
			expected: domain.RobokassaNotification{OutSum: "500.000000", InvID: 42, RawInvID: "42", Signature: validRobokassaSignature},
		},
		{
			name: "Valid query with legacy aliases and lower-case signature",
			request: func() *http.Request {
				q := url.Values{"out_summ": {"500.000000"}, "inv_id": {"42"}, "crc": {strings.ToLower(validRobokassaSignature)}}
				return httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+q.Encode(), nil)
			},
			expected: domain.RobokassaNotification{OutSum: "500.000000", InvID: 42, RawInvID: "42", Signature: strings.ToLower(validRobokassaSignature)},
		},
		{
			name: "Leading zeros in InvId are kept and signed as sent",
			request: func() *http.Request {
				q := url.Values{"OutSum": {"500.000000"}, "InvId": {"042"}, "SignatureValue": {"C33539F24F7D1473339236C6EE9313B8"}}
				return httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+q.Encode(), nil)
			},
			expected: domain.RobokassaNotification{OutSum: "500.000000", InvID: 42, RawInvID: "042", Signature: "C33539F24F7D1473339236C6EE9313B8"},
		},
		{
			name: "Missing signature",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?OutSum=500&InvId=42", nil)
			},
			expectedErr: domain.ErrMissingField,
		},
		{
			name: "Tampered signature",
			request: func() *http.Request {
				q := url.Values{"OutSum": {"500.000000"}, "InvId": {"42"}, "SignatureValue": {"00000000000000000000000000000000"}}
				return httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+q.Encode(), nil)
			},
			expectedErr: domain.ErrInvalidSignature,
		},
		{
			name: "Tampered amount",
			request: func() *http.Request {
				q := url.Values{"OutSum": {"5000.000000"}, "InvId": {"42"}, "SignatureValue": {validRobokassaSignature}}
				return httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+q.Encode(), nil)
			},
			expectedErr: domain.ErrInvalidSignature,
		},
		{
			name: "Non numeric invoice",
			request: func() *http.Request {
				q := url.Values{"OutSum": {"500.000000"}, "InvId": {"abc"}, "SignatureValue": {validRobokassaSignature}}
				return httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+q.Encode(), nil)
			},
			expectedErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := p.ParseNotification(tt.request())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestRobokassa_ParseNotificationNotConfigured(t *testing.T) {
	p := NewRobokassa(config.Robokassa{})
	r := httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?OutSum=1&InvId=1&SignatureValue=x", nil)

	_, err := p.ParseNotification(r)
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestRobokassa_PaymentURL(t *testing.T) {
	p := NewRobokassa(config.Robokassa{Login: "shop", Password1: "secret1", Password2: "secret2", TestMode: true})
	order := &domain.Order{InvID: 42, Amount: 500, Description: "Пополнение баланса через robokassa"}

	raw, err := p.PaymentURL(context.Background(), order, "https://app.example.com/payment/success")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "auth.robokassa.ru", u.Host)
	q := u.Query()
	assert.Equal(t, "shop", q.Get("MerchantLogin"))
	assert.Equal(t, "500.00", q.Get("OutSum"))
	assert.Equal(t, "42", q.Get("InvId"))
	assert.Equal(t, "DCBBBFB464AF77D0CB9CFD5324B02BEA", q.Get("SignatureValue"))
	assert.Equal(t, "1", q.Get("IsTest"))
	assert.Equal(t, "https://app.example.com/payment/success", q.Get("SuccessURL"))

	_, err = NewRobokassa(config.Robokassa{}).PaymentURL(context.Background(), order, "")
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
	assert.Equal(t, "https://demo-payment.robokassa.ru?sum=500.00&inv=42", p.PlaceholderURL(order))
}
