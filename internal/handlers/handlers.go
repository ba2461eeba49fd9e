package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/paybridge/docs"
	balancehandlers "github.com/GlebRadaev/paybridge/internal/handlers/balance"
	paymentshandlers "github.com/GlebRadaev/paybridge/internal/handlers/payments"
	webhookshandlers "github.com/GlebRadaev/paybridge/internal/handlers/webhooks"
	"github.com/GlebRadaev/paybridge/internal/service"
	"github.com/GlebRadaev/paybridge/pkg/auth"
	"github.com/GlebRadaev/paybridge/pkg/ratelimit"
	"github.com/GlebRadaev/paybridge/pkg/utils"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type PaymentHandler interface {
	Initiate(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Robokassa(w http.ResponseWriter, r *http.Request)
	Pally(w http.ResponseWriter, r *http.Request)
	YooMoney(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	ActivatePromo(w http.ResponseWriter, r *http.Request)
	AdminAdjust(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	PaymentHandler PaymentHandler
	WebhookHandler WebhookHandler
	BalanceHandler BalanceHandler

	jwtService auth.JWTServiceInterface
	limiter    *ratelimit.IPRateLimiter
	ready      func() bool
}

func New(s *service.Services, jwtService auth.JWTServiceInterface, limiter *ratelimit.IPRateLimiter) *Handlers {
	return &Handlers{
		PaymentHandler: paymentshandlers.New(s.PaymentService),
		WebhookHandler: webhookshandlers.New(s.WebhookService, s.Robokassa, s.Pally, s.YooMoney),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		jwtService:     jwtService,
		limiter:        limiter,
	}
}

// SetReadiness makes /health answer 503 while ready reports false.
func (h *Handlers) SetReadiness(ready func() bool) {
	h.ready = ready
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil && !h.ready() {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true, Message: "ok"})
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-Auth-Token"},
			AllowCredentials: false,
			MaxAge:           86400,
		}),
	)
	r.Get("/health", h.health)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		// Payment systems retry on their own schedule and are not rate limited.
		r.Route("/webhooks", func(r chi.Router) {
			r.Get("/robokassa", h.WebhookHandler.Robokassa)
			r.Post("/robokassa", h.WebhookHandler.Robokassa)
			r.Post("/pally", h.WebhookHandler.Pally)
			r.Post("/yoomoney", h.WebhookHandler.YooMoney)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.limiter.Middleware)
			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.PaymentHandler.Initiate)
				r.Get("/{id}", h.PaymentHandler.GetOrder)
			})
			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/balance", h.BalanceHandler.GetBalance)
				r.Get("/transactions", h.BalanceHandler.History)
			})
			r.Post("/promo/activate", h.BalanceHandler.ActivatePromo)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminMiddleware(h.jwtService))
			r.Post("/admin/balance", h.BalanceHandler.AdminAdjust)
		})
	})

	return r
}
