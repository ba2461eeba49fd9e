package provider

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
)

const yoomoneyQuickpayURL = "https://yoomoney.ru/quickpay/confirm.xml"

type YooMoney struct {
	receiver string
	secret   string
}

func NewYooMoney(cfg config.YooMoney) *YooMoney {
	return &YooMoney{
		receiver: cfg.Receiver,
		secret:   cfg.NotificationSecret,
	}
}

func (p *YooMoney) System() domain.PaymentSystem { return domain.PaymentSystemYooMoney }

// notificationHash follows the HTTP-notification protocol:
// SHA1(notification_type&operation_id&amount&currency&datetime&sender&codepro&secret&label).
func notificationHash(n domain.YooMoneyNotification, secret string) string {
	s := strings.Join([]string{
		n.NotificationType, n.OperationID, n.Amount, n.Currency, n.Datetime,
		n.Sender, n.Codepro, secret, n.Label,
	}, "&")
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (p *YooMoney) ParseNotification(r *http.Request) (domain.Notification, error) {
	if p.secret == "" {
		return nil, domain.ErrProviderNotConfigured
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	n := domain.YooMoneyNotification{
		NotificationType: r.Form.Get("notification_type"),
		OperationID:      r.Form.Get("operation_id"),
		Amount:           r.Form.Get("amount"),
		WithdrawAmount:   r.Form.Get("withdraw_amount"),
		Currency:         r.Form.Get("currency"),
		Datetime:         r.Form.Get("datetime"),
		Sender:           r.Form.Get("sender"),
		Codepro:          r.Form.Get("codepro"),
		Label:            strings.TrimSpace(r.Form.Get("label")),
		SHA1Hash:         r.Form.Get("sha1_hash"),
		Unaccepted:       r.Form.Get("unaccepted") == "true",
	}
	if n.Label == "" || n.Amount == "" || n.OperationID == "" || n.SHA1Hash == "" {
		return nil, domain.ErrMissingField
	}
	if !SignatureMatches(notificationHash(n, p.secret), n.SHA1Hash) {
		return nil, domain.ErrInvalidSignature
	}
	return n, nil
}

func (p *YooMoney) PaymentURL(_ context.Context, order *domain.Order, returnURL string) (string, error) {
	if p.receiver == "" {
		return "", domain.ErrProviderNotConfigured
	}
	q := url.Values{}
	q.Set("receiver", p.receiver)
	q.Set("quickpay-form", "shop")
	q.Set("targets", "Пополнение баланса Jobs-App")
	q.Set("paymentType", "AC")
	q.Set("sum", formatAmount(order.Amount))
	q.Set("label", order.ID)
	if returnURL != "" {
		q.Set("successURL", returnURL)
	}
	return yoomoneyQuickpayURL + "?" + q.Encode(), nil
}

func (p *YooMoney) PlaceholderURL(order *domain.Order) string {
	return fmt.Sprintf("https://demo-payment.yoomoney.ru?sum=%s&label=%s", formatAmount(order.Amount), order.ID)
}
