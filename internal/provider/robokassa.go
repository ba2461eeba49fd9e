package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
)

const robokassaPaymentURL = "https://auth.robokassa.ru/Merchant/Index.aspx"

type Robokassa struct {
	login     string
	password1 string
	password2 string
	testMode  bool
}

func NewRobokassa(cfg config.Robokassa) *Robokassa {
	return &Robokassa{
		login:     cfg.Login,
		password1: cfg.Password1,
		password2: cfg.Password2,
		testMode:  cfg.TestMode,
	}
}

func (p *Robokassa) System() domain.PaymentSystem { return domain.PaymentSystemRobokassa }

// ParseNotification reads OutSum, InvId and SignatureValue (or their legacy
// lower-case aliases) from the form body or the query string and checks
// MD5(OutSum:InvId:Password2).
func (p *Robokassa) ParseNotification(r *http.Request) (domain.Notification, error) {
	if p.password2 == "" {
		return nil, domain.ErrProviderNotConfigured
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	outSum := firstOf(r.Form, "OutSum", "out_summ")
	invID := firstOf(r.Form, "InvId", "inv_id")
	signature := firstOf(r.Form, "SignatureValue", "crc")
	if outSum == "" || invID == "" || signature == "" {
		return nil, domain.ErrMissingField
	}

	inv, err := strconv.ParseInt(invID, 10, 64)
	if err != nil || inv <= 0 {
		return nil, fmt.Errorf("%w: InvId must be a positive integer", domain.ErrValidation)
	}

	if !SignatureMatches(Signature(outSum, invID, p.password2), signature) {
		return nil, domain.ErrInvalidSignature
	}

	return domain.RobokassaNotification{
		OutSum:    outSum,
		InvID:     inv,
		RawInvID:  invID,
		Signature: signature,
	}, nil
}

func (p *Robokassa) PaymentURL(_ context.Context, order *domain.Order, returnURL string) (string, error) {
	if p.login == "" || p.password1 == "" {
		return "", domain.ErrProviderNotConfigured
	}
	outSum := formatAmount(order.Amount)
	invID := strconv.FormatInt(order.InvID, 10)

	q := url.Values{}
	q.Set("MerchantLogin", p.login)
	q.Set("OutSum", outSum)
	q.Set("InvId", invID)
	q.Set("Description", order.Description)
	q.Set("SignatureValue", Signature(p.login, outSum, invID, p.password1))
	q.Set("Culture", "ru")
	if p.testMode {
		q.Set("IsTest", "1")
	}
	if returnURL != "" {
		q.Set("SuccessURL", returnURL)
	}
	return robokassaPaymentURL + "?" + q.Encode(), nil
}

func (p *Robokassa) PlaceholderURL(order *domain.Order) string {
	return fmt.Sprintf("https://demo-payment.robokassa.ru?sum=%s&inv=%d", formatAmount(order.Amount), order.InvID)
}
