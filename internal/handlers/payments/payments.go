package payments

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/dto"
	"github.com/GlebRadaev/paybridge/pkg/utils"
	"github.com/GlebRadaev/paybridge/pkg/validate"
)

//go:generate mockgen -source=payments.go -destination=mock_payments.go -package=payments

type Service interface {
	Initiate(ctx context.Context, userID int, amount float64, system domain.PaymentSystem, returnURL string) (*domain.Order, string, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Initiate godoc
//
//	@Summary		Start a balance top-up
//	@Description	Create a pending order and return the payment system redirect URL.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.InitiatePaymentRequestDTO	true	"Top-up request"
//	@Success		200		{object}	dto.InitiatePaymentResponseDTO	"Order created"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		404		{object}	utils.Response					"User not found"
//	@Failure		429		{object}	utils.Response					"Too many requests"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/payments [post]
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req dto.InitiatePaymentRequestDTO
	if err := validate.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, validate.ErrInvalidBody) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		utils.RespondWithDetails(w, http.StatusBadRequest, "Укажите user_id, сумму > 0 и платёжную систему", validate.Details(err))
		return
	}

	order, paymentURL, err := h.paymentService.Initiate(r.Context(), req.UserID, req.Amount, domain.PaymentSystem(req.PaymentSystem), req.ReturnURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrUnknownPaymentSystem):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Пользователь не найден")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.InitiatePaymentResponseDTO{
		Success:       true,
		TransactionID: order.ID,
		InvID:         order.InvID,
		PaymentURL:    paymentURL,
		Amount:        order.Amount,
	})
}

// GetOrder godoc
//
//	@Summary		Get top-up status
//	@Description	Return the order created by a top-up, with its current status.
//	@Tags			Payments
//	@Produce		json
//	@Param			id	path		string						true	"Order id"
//	@Success		200	{object}	dto.OrderStatusResponseDTO	"Order"
//	@Failure		404	{object}	utils.Response				"Order not found"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/payments/{id} [get]
func (h *PaymentHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.paymentService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.OrderStatusResponseDTO{
		Success:     true,
		Transaction: dto.OrderFromDomain(order),
	})
}
