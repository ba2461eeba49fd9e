package repo

import (
	"github.com/GlebRadaev/paybridge/internal/pg"
	"github.com/GlebRadaev/paybridge/internal/relay"
	balancerepo "github.com/GlebRadaev/paybridge/internal/repo/balance-repo"
	ledgerrepo "github.com/GlebRadaev/paybridge/internal/repo/ledger-repo"
	orderrepo "github.com/GlebRadaev/paybridge/internal/repo/order-repo"
	outboxrepo "github.com/GlebRadaev/paybridge/internal/repo/outbox-repo"
	promorepo "github.com/GlebRadaev/paybridge/internal/repo/promo-repo"
	userrepo "github.com/GlebRadaev/paybridge/internal/repo/user-repo"
	"github.com/GlebRadaev/paybridge/internal/service/balanceservice"
	"github.com/GlebRadaev/paybridge/internal/service/paymentservice"
)

// OutboxRepo is written by balance changes and drained by the relay.
type OutboxRepo interface {
	balanceservice.OutboxRepo
	relay.Repo
}

type Repositories struct {
	UserRepo    balanceservice.UserRepo
	OrderRepo   paymentservice.OrderRepo
	BalanceRepo balanceservice.BalanceRepo
	LedgerRepo  balanceservice.LedgerRepo
	PromoRepo   balanceservice.PromoRepo
	OutboxRepo  OutboxRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	orderRepo := orderrepo.New(conn)
	balanceRepo := balancerepo.New(conn, txManager)
	ledgerRepo := ledgerrepo.New(conn)
	promoRepo := promorepo.New(conn)
	outboxRepo := outboxrepo.New(conn)

	return &Repositories{
		UserRepo:    userRepo,
		OrderRepo:   orderRepo,
		BalanceRepo: balanceRepo,
		LedgerRepo:  ledgerRepo,
		PromoRepo:   promoRepo,
		OutboxRepo:  outboxRepo,
	}
}
