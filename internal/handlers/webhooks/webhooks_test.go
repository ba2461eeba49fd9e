package webhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/dto"
	"github.com/GlebRadaev/paybridge/internal/provider"
	"github.com/GlebRadaev/paybridge/pkg/utils"
)

type mocks struct {
	service   *MockService
	robokassa *MockParser
	pally     *MockParser
	yoomoney  *MockParser
}

func NewMock(t *testing.T) (*WebhookHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		service:   NewMockService(ctrl),
		robokassa: NewMockParser(ctrl),
		pally:     NewMockParser(ctrl),
		yoomoney:  NewMockParser(ctrl),
	}
	return New(m.service, m.robokassa, m.pally, m.yoomoney), m
}

func TestRobokassaHandler(t *testing.T) {
	handler, m := NewMock(t)
	n := domain.RobokassaNotification{OutSum: "500.000000", InvID: 42, RawInvID: "42", Signature: "11450549085DC1824F1D027C1ABAEB8F"}

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "Credited",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(n, nil)
				m.service.EXPECT().Confirm(gomock.Any(), n).Return(domain.ConfirmCredited, &domain.Order{InvID: 42}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: "OK42",
		},
		{
			name: "Already processed",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(n, nil)
				m.service.EXPECT().Confirm(gomock.Any(), n).Return(domain.ConfirmAlreadyProcessed, nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: "OK42",
		},
		{
			name: "Tampered signature",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(nil, domain.ErrInvalidSignature)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid signature",
		},
		{
			name: "Missing parameters",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(nil, domain.ErrMissingField)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Missing required parameters",
		},
		{
			name: "Malformed invoice id",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).
					Return(nil, fmt.Errorf("%w: InvId must be a positive integer", domain.ErrValidation))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid request",
		},
		{
			name: "Password not configured",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(nil, domain.ErrProviderNotConfigured)
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Configuration error",
		},
		{
			name: "Unknown order",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(n, nil)
				m.service.EXPECT().Confirm(gomock.Any(), n).Return(domain.ConfirmResult(0), nil, domain.ErrOrderNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: "Order not found",
		},
		{
			name: "Database failure",
			prepareMock: func() {
				m.robokassa.EXPECT().ParseNotification(gomock.Any()).Return(n, nil)
				m.service.EXPECT().Confirm(gomock.Any(), n).Return(domain.ConfirmResult(0), nil, errors.New("connection reset"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/webhooks/robokassa", nil)
			w := httptest.NewRecorder()
			handler.Robokassa(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRobokassaHandler_WithSignedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	robokassa := provider.NewRobokassa(config.Robokassa{Login: "shop", Password1: "secret1", Password2: "secret2"})
	handler := New(service, robokassa, NewMockParser(ctrl), NewMockParser(ctrl))

	service.EXPECT().
		Confirm(gomock.Any(), domain.RobokassaNotification{OutSum: "500.000000", InvID: 42, RawInvID: "42", Signature: "11450549085DC1824F1D027C1ABAEB8F"}).
		Return(domain.ConfirmCredited, &domain.Order{InvID: 42}, nil)

	query := url.Values{"OutSum": {"500.000000"}, "InvId": {"42"}, "SignatureValue": {"11450549085DC1824F1D027C1ABAEB8F"}}
	r := httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	handler.Robokassa(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK42", w.Body.String())

	tampered := url.Values{"OutSum": {"5000.000000"}, "InvId": {"42"}, "SignatureValue": {"11450549085DC1824F1D027C1ABAEB8F"}}
	r = httptest.NewRequest(http.MethodPost, "/api/webhooks/robokassa", strings.NewReader(tampered.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	handler.Robokassa(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRobokassaHandler_EchoesInvIDAsSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	robokassa := provider.NewRobokassa(config.Robokassa{Login: "shop", Password1: "secret1", Password2: "secret2"})
	handler := New(service, robokassa, NewMockParser(ctrl), NewMockParser(ctrl))

	service.EXPECT().
		Confirm(gomock.Any(), domain.RobokassaNotification{OutSum: "500.000000", InvID: 42, RawInvID: "042", Signature: "C33539F24F7D1473339236C6EE9313B8"}).
		Return(domain.ConfirmAlreadyProcessed, nil, nil)

	query := url.Values{"OutSum": {"500.000000"}, "InvId": {"042"}, "SignatureValue": {"C33539F24F7D1473339236C6EE9313B8"}}
	r := httptest.NewRequest(http.MethodGet, "/api/webhooks/robokassa?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	handler.Robokassa(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK042", w.Body.String())
}

func TestJSONWebhookHandlers(t *testing.T) {
	handler, m := NewMock(t)
	pally := domain.PallyNotification{OrderID: "5f0c7a4e-3d55-4c55-9b0e-0a3c1c1f2b8e", Amount: "50000", Status: "success", PaymentID: "pay-1"}
	yoomoney := domain.YooMoneyNotification{Label: "5f0c7a4e-3d55-4c55-9b0e-0a3c1c1f2b8e", OperationID: "op-1", Amount: "490.00", WithdrawAmount: "500.00"}

	tests := []struct {
		name          string
		call          func(w http.ResponseWriter, r *http.Request)
		prepareMock   func()
		expectedCode  int
		expectedBody  dto.WebhookResponseDTO
		expectedError string
	}{
		{
			name: "Pally credited",
			call: handler.Pally,
			prepareMock: func() {
				m.pally.EXPECT().ParseNotification(gomock.Any()).Return(pally, nil)
				m.service.EXPECT().Confirm(gomock.Any(), pally).Return(domain.ConfirmCredited, &domain.Order{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.WebhookResponseDTO{Success: true},
		},
		{
			name: "Pally payment not successful",
			call: handler.Pally,
			prepareMock: func() {
				failed := pally
				failed.Status = "fail"
				m.pally.EXPECT().ParseNotification(gomock.Any()).Return(failed, nil)
				m.service.EXPECT().Confirm(gomock.Any(), failed).Return(domain.ConfirmIgnored, nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.WebhookResponseDTO{Success: true, Message: "Payment not successful"},
		},
		{
			name: "Pally invalid signature",
			call: handler.Pally,
			prepareMock: func() {
				m.pally.EXPECT().ParseNotification(gomock.Any()).Return(nil, domain.ErrInvalidSignature)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid signature",
		},
		{
			name: "YooMoney already processed",
			call: handler.YooMoney,
			prepareMock: func() {
				m.yoomoney.EXPECT().ParseNotification(gomock.Any()).Return(yoomoney, nil)
				m.service.EXPECT().Confirm(gomock.Any(), yoomoney).Return(domain.ConfirmAlreadyProcessed, nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.WebhookResponseDTO{Success: true, Message: "Already processed"},
		},
		{
			name: "YooMoney unknown order",
			call: handler.YooMoney,
			prepareMock: func() {
				m.yoomoney.EXPECT().ParseNotification(gomock.Any()).Return(yoomoney, nil)
				m.service.EXPECT().Confirm(gomock.Any(), yoomoney).Return(domain.ConfirmResult(0), nil, domain.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
		{
			name: "YooMoney database failure",
			call: handler.YooMoney,
			prepareMock: func() {
				m.yoomoney.EXPECT().ParseNotification(gomock.Any()).Return(yoomoney, nil)
				m.service.EXPECT().Confirm(gomock.Any(), yoomoney).Return(domain.ConfirmResult(0), nil, errors.New("deadlock detected"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/webhooks", nil)
			w := httptest.NewRecorder()
			tt.call(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				_ = json.NewDecoder(w.Body).Decode(&resp)
				assert.False(t, resp.Success)
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var body dto.WebhookResponseDTO
			_ = json.NewDecoder(w.Body).Decode(&body)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
