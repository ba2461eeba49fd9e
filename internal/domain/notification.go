package domain

import (
	"fmt"
	"strconv"
)

// OrderKey locates an order either by Robokassa invoice number or by order id.
type OrderKey struct {
	InvID int64
	ID    string
}

func (k OrderKey) String() string {
	if k.ID != "" {
		return k.ID
	}
	return strconv.FormatInt(k.InvID, 10)
}

// Notification is a decoded, signature-checked provider callback. The set of
// implementations is closed: one struct per payment system.
type Notification interface {
	Provider() PaymentSystem
	OrderKey() OrderKey
	// AssertedAmount is what the provider claims was paid. It is only logged.
	AssertedAmount() float64
	ExternalID() string
	// Succeeded is false for callbacks that report a failed or held payment.
	Succeeded() bool

	notification()
}

// RobokassaNotification keeps InvId as received in RawInvID; Robokassa expects
// it echoed back verbatim in the OK answer.
type RobokassaNotification struct {
	OutSum    string
	InvID     int64
	RawInvID  string
	Signature string
}

func (n RobokassaNotification) Ack() string {
	if n.RawInvID != "" {
		return "OK" + n.RawInvID
	}
	return "OK" + strconv.FormatInt(n.InvID, 10)
}

func (n RobokassaNotification) Provider() PaymentSystem { return PaymentSystemRobokassa }
func (n RobokassaNotification) OrderKey() OrderKey      { return OrderKey{InvID: n.InvID} }
func (n RobokassaNotification) AssertedAmount() float64 { return parseAmount(n.OutSum) }
func (n RobokassaNotification) ExternalID() string      { return strconv.FormatInt(n.InvID, 10) }
func (n RobokassaNotification) Succeeded() bool         { return true }
func (RobokassaNotification) notification()             {}

// PallyNotification carries the amount in kopecks.
type PallyNotification struct {
	OrderID   string
	Amount    string
	Status    string
	PaymentID string
	Signature string
}

func (n PallyNotification) Provider() PaymentSystem { return PaymentSystemPally }
func (n PallyNotification) OrderKey() OrderKey      { return OrderKey{ID: n.OrderID} }
func (n PallyNotification) AssertedAmount() float64 { return parseAmount(n.Amount) / 100 }
func (n PallyNotification) ExternalID() string      { return n.PaymentID }
func (n PallyNotification) Succeeded() bool         { return n.Status == "success" }
func (PallyNotification) notification()             {}

type YooMoneyNotification struct {
	NotificationType string
	OperationID      string
	Amount           string
	WithdrawAmount   string
	Currency         string
	Datetime         string
	Sender           string
	Codepro          string
	Label            string
	SHA1Hash         string
	Unaccepted       bool
}

func (n YooMoneyNotification) Provider() PaymentSystem { return PaymentSystemYooMoney }
func (n YooMoneyNotification) OrderKey() OrderKey      { return OrderKey{ID: n.Label} }
func (n YooMoneyNotification) ExternalID() string      { return n.OperationID }
func (n YooMoneyNotification) Succeeded() bool         { return n.Codepro != "true" && !n.Unaccepted }
func (YooMoneyNotification) notification()             {}

func (n YooMoneyNotification) AssertedAmount() float64 {
	if n.WithdrawAmount != "" {
		return parseAmount(n.WithdrawAmount)
	}
	return parseAmount(n.Amount)
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ConfirmResult is the outcome of applying a notification.
type ConfirmResult int

const (
	ConfirmCredited ConfirmResult = iota + 1
	ConfirmAlreadyProcessed
	ConfirmIgnored
)

func (r ConfirmResult) String() string {
	switch r {
	case ConfirmCredited:
		return "credited"
	case ConfirmAlreadyProcessed:
		return "already processed"
	case ConfirmIgnored:
		return "ignored"
	}
	return fmt.Sprintf("ConfirmResult(%d)", int(r))
}
