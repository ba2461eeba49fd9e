package dto

import (
	"time"

	"github.com/GlebRadaev/paybridge/internal/domain"
)

type BalanceResponseDTO struct {
	UserID  int     `json:"user_id" example:"7"`
	Balance float64 `json:"balance" example:"500.5"`
}

type AdjustBalanceRequestDTO struct {
	UserID      int     `json:"user_id" validate:"required,gt=0" example:"7"`
	Amount      float64 `json:"amount" validate:"required,ne=0" example:"-150"`
	Description string  `json:"description" validate:"max=255" example:"Возврат за отменённую вакансию"`
}

type PromoActivateRequestDTO struct {
	UserID int    `json:"user_id" validate:"required,gt=0" example:"7"`
	Code   string `json:"code" validate:"required,max=64" example:"WELCOME500"`
}

type TransactionResponseDTO struct {
	ID          string    `json:"id" example:"2b1f5c8e-6a0d-4f1e-9d55-7c2e4b0a9f13"`
	UserID      int       `json:"user_id" example:"7"`
	Amount      float64   `json:"amount" example:"500"`
	Type        string    `json:"type" example:"deposit"`
	Source      string    `json:"source" example:"payment"`
	Status      string    `json:"status" example:"completed"`
	OrderID     *string   `json:"order_id,omitempty" example:"5f0c7a4e-3d55-4c55-9b0e-0a3c1c1f2b8e"`
	Description string    `json:"description" example:"Пополнение баланса через robokassa"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-01T12:03:10Z"`
}

type TransactionsResponseDTO struct {
	Success      bool                     `json:"success" example:"true"`
	Transactions []TransactionResponseDTO `json:"transactions"`
}

type BalanceChangeResponseDTO struct {
	Success     bool                   `json:"success" example:"true"`
	Transaction TransactionResponseDTO `json:"transaction"`
}

func TransactionFromDomain(tx domain.Transaction) TransactionResponseDTO {
	return TransactionResponseDTO{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Source:      tx.Source,
		Status:      tx.Status,
		OrderID:     tx.OrderID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}
