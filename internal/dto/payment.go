package dto

import (
	"time"

	"github.com/GlebRadaev/paybridge/internal/domain"
)

type InitiatePaymentRequestDTO struct {
	UserID        int     `json:"user_id" validate:"required,gt=0" example:"7"`
	Amount        float64 `json:"amount" validate:"required,gt=0" example:"500"`
	PaymentSystem string  `json:"payment_system" validate:"required,oneof=robokassa pally yoomoney" example:"robokassa"`
	ReturnURL     string  `json:"return_url" validate:"omitempty,url" example:"https://app.example.com/payment/success"`
}

type InitiatePaymentResponseDTO struct {
	Success       bool    `json:"success" example:"true"`
	TransactionID string  `json:"transaction_id" example:"5f0c7a4e-3d55-4c55-9b0e-0a3c1c1f2b8e"`
	InvID         int64   `json:"inv_id" example:"1042"`
	PaymentURL    string  `json:"payment_url" example:"https://auth.robokassa.ru/Merchant/Index.aspx?InvId=1042"`
	Amount        float64 `json:"amount" example:"500"`
}

type OrderResponseDTO struct {
	ID            string     `json:"id" example:"5f0c7a4e-3d55-4c55-9b0e-0a3c1c1f2b8e"`
	InvID         int64      `json:"inv_id" example:"1042"`
	UserID        int        `json:"user_id" example:"7"`
	Amount        float64    `json:"amount" example:"500"`
	Kind          string     `json:"type" example:"deposit"`
	PaymentSystem string     `json:"payment_system" example:"robokassa"`
	Status        string     `json:"status" example:"paid"`
	CreatedAt     time.Time  `json:"created_at" example:"2024-05-01T12:00:00Z"`
	UpdatedAt     time.Time  `json:"updated_at" example:"2024-05-01T12:03:10Z"`
	PaidAt        *time.Time `json:"paid_at,omitempty" example:"2024-05-01T12:03:10Z"`
}

type OrderStatusResponseDTO struct {
	Success     bool             `json:"success" example:"true"`
	Transaction OrderResponseDTO `json:"transaction"`
}

// WebhookResponseDTO is the JSON acknowledgement for providers that expect one.
type WebhookResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Already processed"`
}

func OrderFromDomain(o *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:            o.ID,
		InvID:         o.InvID,
		UserID:        o.UserID,
		Amount:        o.Amount,
		Kind:          o.Kind,
		PaymentSystem: string(o.PaymentSystem),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		PaidAt:        o.PaidAt,
	}
}
