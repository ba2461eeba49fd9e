package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/dto"
	"github.com/GlebRadaev/paybridge/pkg/auth"
	"github.com/GlebRadaev/paybridge/pkg/utils"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func withUserID(r *http.Request, userID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name         string
		userID       string
		prepareMock  func()
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name:   "Successful retrieval",
			userID: "7",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 7).Return(100.50, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{UserID: 7, Balance: 100.50},
		},
		{
			name:         "Invalid user id",
			userID:       "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "User not found",
			userID: "404",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 404).Return(0.0, domain.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Internal server error",
			userID: "7",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 7).Return(0.0, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/"+tt.userID+"/balance", nil), tt.userID)
			w := httptest.NewRecorder()
			handler.GetBalance(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	now := time.Date(2024, 5, 1, 12, 3, 10, 0, time.UTC)
	orderID := "5f0c7a4e-3d55-4c55-9b0e-0a3c1c1f2b8e"

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
		expectedBody dto.TransactionsResponseDTO
	}{
		{
			name:  "Default limit",
			query: "",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), 7, 0).Return([]domain.Transaction{
					{ID: "tx-2", UserID: 7, Amount: -100, Type: "withdrawal", Source: "admin", Status: "completed", CreatedAt: now},
					{ID: "tx-1", UserID: 7, Amount: 500, Type: "deposit", Source: "payment", Status: "completed", OrderID: &orderID, CreatedAt: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.TransactionsResponseDTO{
				Success: true,
				Transactions: []dto.TransactionResponseDTO{
					{ID: "tx-2", UserID: 7, Amount: -100, Type: "withdrawal", Source: "admin", Status: "completed", CreatedAt: now},
					{ID: "tx-1", UserID: 7, Amount: 500, Type: "deposit", Source: "payment", Status: "completed", OrderID: &orderID, CreatedAt: now},
				},
			},
		},
		{
			name:  "Explicit limit, empty history",
			query: "?limit=10",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), 7, 10).Return([]domain.Transaction{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.TransactionsResponseDTO{Success: true, Transactions: []dto.TransactionResponseDTO{}},
		},
		{
			name:         "Invalid limit",
			query:        "?limit=ten",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Internal server error",
			query: "",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), 7, 0).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/transactions"+tt.query, nil), "7")
			w := httptest.NewRecorder()
			handler.History(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.TransactionsResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestActivatePromoHandler(t *testing.T) {
	handler, service := NewMock(t)
	tx := &domain.Transaction{ID: "tx-1", UserID: 7, Amount: 500, Type: "deposit", Source: "promo", Status: "completed", Description: "Активация промокода WELCOME500"}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Promo credited",
			body: `{"user_id":7,"code":"welcome500"}`,
			prepareMock: func() {
				service.EXPECT().ActivatePromo(gomock.Any(), 7, "welcome500").Return(tx, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Missing code",
			body:          `{"user_id":7}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Unknown code",
			body: `{"user_id":7,"code":"NOPE"}`,
			prepareMock: func() {
				service.EXPECT().ActivatePromo(gomock.Any(), 7, "NOPE").Return(nil, domain.ErrPromoNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Промокод не найден",
		},
		{
			name: "Already activated",
			body: `{"user_id":7,"code":"WELCOME500"}`,
			prepareMock: func() {
				service.EXPECT().ActivatePromo(gomock.Any(), 7, "WELCOME500").Return(nil, domain.ErrPromoAlreadyUsed)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "Промокод уже активирован",
		},
		{
			name: "Exhausted",
			body: `{"user_id":7,"code":"WELCOME500"}`,
			prepareMock: func() {
				service.EXPECT().ActivatePromo(gomock.Any(), 7, "WELCOME500").Return(nil, domain.ErrPromoExhausted)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "Промокод больше недоступен",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/promo/activate", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ActivatePromo(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceChangeResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.True(t, body.Success)
				assert.Equal(t, dto.TransactionFromDomain(*tx), body.Transaction)
				return
			}
			var resp utils.Response
			_ = json.NewDecoder(w.Body).Decode(&resp)
			assert.Equal(t, tt.expectedError, resp.Error)
		})
	}
}

func TestAdminAdjustHandler(t *testing.T) {
	handler, service := NewMock(t)
	tx := &domain.Transaction{ID: "tx-9", UserID: 7, Amount: -150, Type: "withdrawal", Source: "admin", Status: "completed", Description: "Возврат"}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Debit applied",
			body: `{"user_id":7,"amount":-150,"description":"Возврат"}`,
			prepareMock: func() {
				service.EXPECT().Adjust(gomock.Any(), 7, -150.0, "Возврат").Return(tx, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Zero amount",
			body:          `{"user_id":7,"amount":0}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Malformed body",
			body:          `not json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Insufficient balance",
			body: `{"user_id":7,"amount":-1000}`,
			prepareMock: func() {
				service.EXPECT().Adjust(gomock.Any(), 7, -1000.0, "").Return(nil, domain.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "Недостаточно средств",
		},
		{
			name: "User not found",
			body: `{"user_id":404,"amount":10}`,
			prepareMock: func() {
				service.EXPECT().Adjust(gomock.Any(), 404, 10.0, "").Return(nil, domain.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Пользователь не найден",
		},
		{
			name: "Internal server error",
			body: `{"user_id":7,"amount":10}`,
			prepareMock: func() {
				service.EXPECT().Adjust(gomock.Any(), 7, 10.0, "").Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/admin/balance", bytes.NewBufferString(tt.body))
			r = r.WithContext(context.WithValue(r.Context(), auth.SubjectKey, "admin@example.com"))
			w := httptest.NewRecorder()
			handler.AdminAdjust(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceChangeResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, dto.TransactionFromDomain(*tx), body.Transaction)
				return
			}
			var resp utils.Response
			_ = json.NewDecoder(w.Body).Decode(&resp)
			assert.Equal(t, tt.expectedError, resp.Error)
		})
	}
}
