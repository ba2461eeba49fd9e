package webhooks

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/dto"
	"github.com/GlebRadaev/paybridge/pkg/utils"
)

//go:generate mockgen -source=webhooks.go -destination=mock_webhooks.go -package=webhooks

type Service interface {
	Confirm(ctx context.Context, n domain.Notification) (domain.ConfirmResult, *domain.Order, error)
}

// Parser decodes and authenticates a provider callback.
type Parser interface {
	ParseNotification(r *http.Request) (domain.Notification, error)
}

type WebhookHandler struct {
	paymentService Service
	robokassa      Parser
	pally          Parser
	yoomoney       Parser
}

func New(paymentService Service, robokassa, pally, yoomoney Parser) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		robokassa:      robokassa,
		pally:          pally,
		yoomoney:       yoomoney,
	}
}

// rejection maps a parse or confirm error to a status and a body that never
// says more than the provider needs to know.
func rejection(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return http.StatusInternalServerError, "Configuration error"
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "Missing required parameters"
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusBadRequest, "Invalid signature"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (h *WebhookHandler) confirm(r *http.Request, parser Parser) (domain.Notification, domain.ConfirmResult, error) {
	n, err := parser.ParseNotification(r)
	if err != nil {
		zap.L().Warn("webhook rejected",
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return nil, 0, err
	}
	result, _, err := h.paymentService.Confirm(r.Context(), n)
	if err != nil {
		return n, 0, err
	}
	return n, result, nil
}

// Robokassa godoc
//
//	@Summary		Robokassa result notification
//	@Description	ResultURL callback. Answers OK<InvId> once the order is paid, including repeated deliveries.
//	@Tags			Webhooks
//	@Accept			x-www-form-urlencoded
//	@Produce		plain
//	@Param			OutSum			formData	string	true	"Paid amount"
//	@Param			InvId			formData	int		true	"Invoice number"
//	@Param			SignatureValue	formData	string	true	"MD5(OutSum:InvId:Password2)"
//	@Success		200				{string}	string	"OK1042"
//	@Failure		400				{string}	string	"Invalid signature"
//	@Failure		404				{string}	string	"Order not found"
//	@Failure		500				{string}	string	"Configuration error"
//	@Router			/api/webhooks/robokassa [post]
//	@Router			/api/webhooks/robokassa [get]
func (h *WebhookHandler) Robokassa(w http.ResponseWriter, r *http.Request) {
	n, _, err := h.confirm(r, h.robokassa)
	if err != nil {
		code, body := rejection(err)
		utils.RespondWithText(w, code, body)
		return
	}
	ack := "OK" + n.OrderKey().String()
	if rn, ok := n.(domain.RobokassaNotification); ok {
		ack = rn.Ack()
	}
	utils.RespondWithText(w, http.StatusOK, ack)
}

// Pally godoc
//
//	@Summary		Pally payment notification
//	@Description	Postback for a Pally bill. Unsuccessful payments are acknowledged without changes.
//	@Tags			Webhooks
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Success		200	{object}	dto.WebhookResponseDTO	"Acknowledged"
//	@Failure		400	{object}	utils.Response			"Invalid signature"
//	@Failure		404	{object}	utils.Response			"Order not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/webhooks/pally [post]
func (h *WebhookHandler) Pally(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, h.pally)
}

// YooMoney godoc
//
//	@Summary		YooMoney HTTP notification
//	@Description	Incoming transfer notification. Protected or unaccepted transfers are acknowledged without changes.
//	@Tags			Webhooks
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Success		200	{object}	dto.WebhookResponseDTO	"Acknowledged"
//	@Failure		400	{object}	utils.Response			"Invalid signature"
//	@Failure		404	{object}	utils.Response			"Order not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/webhooks/yoomoney [post]
func (h *WebhookHandler) YooMoney(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, h.yoomoney)
}

func (h *WebhookHandler) respondJSON(w http.ResponseWriter, r *http.Request, parser Parser) {
	_, result, err := h.confirm(r, parser)
	if err != nil {
		code, message := rejection(err)
		utils.RespondWithError(w, code, message)
		return
	}

	resp := dto.WebhookResponseDTO{Success: true}
	switch result {
	case domain.ConfirmAlreadyProcessed:
		resp.Message = "Already processed"
	case domain.ConfirmIgnored:
		resp.Message = "Payment not successful"
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
