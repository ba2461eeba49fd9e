package domain

import "time"

type PaymentSystem string

const (
	PaymentSystemRobokassa PaymentSystem = "robokassa"
	PaymentSystemPally     PaymentSystem = "pally"
	PaymentSystemYooMoney  PaymentSystem = "yoomoney"
)

func (p PaymentSystem) Valid() bool {
	switch p {
	case PaymentSystemRobokassa, PaymentSystemPally, PaymentSystemYooMoney:
		return true
	}
	return false
}

const (
	// OrderStatusPending: created, waiting for the payment system to notify.
	OrderStatusPending string = "pending"
	// OrderStatusPaid: payment confirmed and balance credited. Terminal.
	OrderStatusPaid string = "paid"
)

// Amounts are stored as NUMERIC(12,2).
const (
	MinAmount = 0.01
	MaxAmount = 9999999999.99
)

const (
	OrderKindDeposit = "deposit"

	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"

	TransactionStatusCompleted = "completed"

	TransactionSourcePayment = "payment"
	TransactionSourceAdmin   = "admin"
	TransactionSourcePromo   = "promo"
)

// Order is a pending or settled top-up initiated through a payment system.
type Order struct {
	ID                string        `db:"id"`
	InvID             int64         `db:"inv_id"`
	UserID            int           `db:"user_id"`
	Amount            float64       `db:"amount"`
	Kind              string        `db:"kind"`
	PaymentSystem     PaymentSystem `db:"payment_system"`
	Status            string        `db:"status"`
	ExternalPaymentID string        `db:"external_payment_id"`
	Description       string        `db:"description"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
	PaidAt            *time.Time    `db:"paid_at"`
}

func (o *Order) Terminal() bool {
	return o.Status == OrderStatusPaid
}

// Transaction is an immutable ledger row. Every balance change writes exactly one.
type Transaction struct {
	ID          string    `db:"id"`
	UserID      int       `db:"user_id"`
	Amount      float64   `db:"amount"`
	Type        string    `db:"type"`
	Source      string    `db:"source"`
	Status      string    `db:"status"`
	OrderID     *string   `db:"order_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type PromoCode struct {
	Code      string     `db:"code"`
	Amount    float64    `db:"amount"`
	MaxUses   *int       `db:"max_uses"`
	UsedCount int        `db:"used_count"`
	Active    bool       `db:"active"`
	ExpiresAt *time.Time `db:"expires_at"`
}

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"

	TopicBalanceChanged = "balance.changed"
)

type OutboxEvent struct {
	ID        int64     `db:"id"`
	Topic     string    `db:"topic"`
	Key       string    `db:"event_key"`
	Payload   []byte    `db:"payload"`
	Status    string    `db:"status"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}

// BalanceChange is a signed balance mutation paired with its ledger row.
type BalanceChange struct {
	UserID      int
	Amount      float64
	Source      string
	OrderID     *string
	Description string
}

// BalanceChanged is the outbox payload published after a committed balance change.
type BalanceChanged struct {
	TransactionID string    `json:"transaction_id"`
	UserID        int       `json:"user_id"`
	Amount        float64   `json:"amount"`
	Balance       float64   `json:"balance"`
	Source        string    `json:"source"`
	OrderID       string    `json:"order_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
