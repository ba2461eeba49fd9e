package service

import (
	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/handlers/balance"
	"github.com/GlebRadaev/paybridge/internal/handlers/payments"
	"github.com/GlebRadaev/paybridge/internal/handlers/webhooks"
	"github.com/GlebRadaev/paybridge/internal/pg"
	"github.com/GlebRadaev/paybridge/internal/provider"
	"github.com/GlebRadaev/paybridge/internal/repo"
	"github.com/GlebRadaev/paybridge/internal/service/balanceservice"
	"github.com/GlebRadaev/paybridge/internal/service/paymentservice"
	"github.com/GlebRadaev/paybridge/pkg/clients"
)

type Services struct {
	PaymentService payments.Service
	WebhookService webhooks.Service
	BalanceService balance.Service

	Robokassa webhooks.Parser
	Pally     webhooks.Parser
	YooMoney  webhooks.Parser
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, cache paymentservice.StatusCache, client clients.HTTPClientI) *Services {
	robokassa := provider.NewRobokassa(cfg.Robokassa)
	pally := provider.NewPally(cfg.Pally, client)
	yoomoney := provider.NewYooMoney(cfg.YooMoney)

	balanceService := balanceservice.New(repo.BalanceRepo, repo.UserRepo, repo.LedgerRepo, repo.PromoRepo, repo.OutboxRepo, txManager)
	paymentService := paymentservice.New(repo.OrderRepo, repo.UserRepo, balanceService, cache, txManager, robokassa, pally, yoomoney)

	return &Services{
		PaymentService: paymentService,
		WebhookService: paymentService,
		BalanceService: balanceService,
		Robokassa:      robokassa,
		Pally:          pally,
		YooMoney:       yoomoney,
	}
}
