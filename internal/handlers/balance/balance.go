package balance

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/dto"
	"github.com/GlebRadaev/paybridge/pkg/auth"
	"github.com/GlebRadaev/paybridge/pkg/utils"
	"github.com/GlebRadaev/paybridge/pkg/validate"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	GetBalance(ctx context.Context, userID int) (float64, error)
	History(ctx context.Context, userID int, limit int) ([]domain.Transaction, error)
	ActivatePromo(ctx context.Context, userID int, code string) (*domain.Transaction, error)
	Adjust(ctx context.Context, userID int, amount float64, description string) (*domain.Transaction, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

func userIDParam(r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func respondWithBalanceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMissingField):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Пользователь не найден")
	case errors.Is(err, domain.ErrPromoNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Промокод не найден")
	case errors.Is(err, domain.ErrPromoExhausted):
		utils.RespondWithError(w, http.StatusConflict, "Промокод больше недоступен")
	case errors.Is(err, domain.ErrPromoAlreadyUsed):
		utils.RespondWithError(w, http.StatusConflict, "Промокод уже активирован")
	case errors.Is(err, domain.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, "Недостаточно средств")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// GetBalance godoc
//
//	@Summary		Get user balance
//	@Description	Return the current balance of the user.
//	@Tags			Balance
//	@Produce		json
//	@Param			userID	path		int						true	"User id"
//	@Success		200		{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		400		{object}	utils.Response			"Invalid user id"
//	@Failure		404		{object}	utils.Response			"User not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/users/{userID}/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		respondWithBalanceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		UserID:  userID,
		Balance: balance,
	})
}

// History godoc
//
//	@Summary		Get ledger history
//	@Description	Balance changes of the user, newest first.
//	@Tags			Balance
//	@Produce		json
//	@Param			userID	path		int							true	"User id"
//	@Param			limit	query		int							false	"Page size, 50 by default, at most 200"
//	@Success		200		{object}	dto.TransactionsResponseDTO	"Ledger rows"
//	@Failure		400		{object}	utils.Response				"Invalid user id"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/users/{userID}/transactions [get]
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	transactions, err := h.balanceService.History(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	response := dto.TransactionsResponseDTO{
		Success:      true,
		Transactions: make([]dto.TransactionResponseDTO, len(transactions)),
	}
	for i, tx := range transactions {
		response.Transactions[i] = dto.TransactionFromDomain(tx)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ActivatePromo godoc
//
//	@Summary		Activate a promo code
//	@Description	Credit the promo amount to the user. Each user can activate a code once.
//	@Tags			Balance
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PromoActivateRequestDTO		true	"Promo activation"
//	@Success		200		{object}	dto.BalanceChangeResponseDTO	"Promo credited"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		404		{object}	utils.Response					"Promo code or user not found"
//	@Failure		409		{object}	utils.Response					"Promo code exhausted or already used"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/promo/activate [post]
func (h *BalanceHandler) ActivatePromo(w http.ResponseWriter, r *http.Request) {
	var req dto.PromoActivateRequestDTO
	if err := validate.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDetails(w, http.StatusBadRequest, "Invalid request body", validate.Details(err))
		return
	}

	tx, err := h.balanceService.ActivatePromo(r.Context(), req.UserID, req.Code)
	if err != nil {
		respondWithBalanceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceChangeResponseDTO{
		Success:     true,
		Transaction: dto.TransactionFromDomain(*tx),
	})
}

// AdminAdjust godoc
//
//	@Summary		Adjust user balance
//	@Description	Credit or debit the balance as an administrator. A debit never drives the balance below zero.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdjustBalanceRequestDTO		true	"Adjustment"
//	@Success		200		{object}	dto.BalanceChangeResponseDTO	"Balance changed"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		401		{object}	utils.Response					"Unauthorized"
//	@Failure		402		{object}	utils.Response					"Insufficient balance"
//	@Failure		403		{object}	utils.Response					"Forbidden"
//	@Failure		404		{object}	utils.Response					"User not found"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/admin/balance [post]
func (h *BalanceHandler) AdminAdjust(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustBalanceRequestDTO
	if err := validate.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDetails(w, http.StatusBadRequest, "Invalid request body", validate.Details(err))
		return
	}

	tx, err := h.balanceService.Adjust(r.Context(), req.UserID, req.Amount, req.Description)
	if err != nil {
		respondWithBalanceError(w, err)
		return
	}
	admin, _ := r.Context().Value(auth.SubjectKey).(string)
	zap.L().Info("admin adjusted balance",
		zap.String("admin", admin),
		zap.Int("user_id", req.UserID),
		zap.Float64("amount", req.Amount),
	)
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceChangeResponseDTO{
		Success:     true,
		Transaction: dto.TransactionFromDomain(*tx),
	})
}
