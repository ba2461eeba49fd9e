package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/pg"
)

//go:generate mockgen -source=paymentservice.go -destination=mock_paymentservice.go -package=paymentservice

type OrderRepo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	MarkPaid(ctx context.Context, system domain.PaymentSystem, key domain.OrderKey, externalID string) (*domain.Order, error)
	FindStatus(ctx context.Context, system domain.PaymentSystem, key domain.OrderKey) (string, error)
}

type UserRepo interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// Ledger applies a balance change together with its ledger row.
type Ledger interface {
	Apply(ctx context.Context, change domain.BalanceChange) (*domain.Transaction, error)
}

type Provider interface {
	System() domain.PaymentSystem
	PaymentURL(ctx context.Context, order *domain.Order, returnURL string) (string, error)
	PlaceholderURL(order *domain.Order) string
}

type StatusCache interface {
	Get(ctx context.Context, id string) (*domain.Order, bool)
	Set(ctx context.Context, order *domain.Order)
}

// amountTolerance is half a kopeck.
const amountTolerance = 0.005

type Service struct {
	orderRepo OrderRepo
	userRepo  UserRepo
	ledger    Ledger
	cache     StatusCache
	txManager pg.TXManager
	providers map[domain.PaymentSystem]Provider
}

func New(orderRepo OrderRepo, userRepo UserRepo, ledger Ledger, cache StatusCache, txManager pg.TXManager, providers ...Provider) *Service {
	s := &Service{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		cache:     cache,
		txManager: txManager,
		providers: make(map[domain.PaymentSystem]Provider, len(providers)),
	}
	for _, p := range providers {
		s.providers[p.System()] = p
	}
	return s
}

// Initiate creates a pending order and asks the payment system for a redirect
// URL. A provider failure never fails the request: the user gets a placeholder URL.
func (s *Service) Initiate(ctx context.Context, userID int, amount float64, system domain.PaymentSystem, returnURL string) (*domain.Order, string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, "", domain.ErrInvalidAmount
	}
	amount = math.Round(amount*100) / 100
	if amount < domain.MinAmount || amount > domain.MaxAmount {
		return nil, "", domain.ErrInvalidAmount
	}
	p, ok := s.providers[system]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrUnknownPaymentSystem, system)
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		return nil, "", domain.ErrUserNotFound
	}

	order, err := s.orderRepo.Create(ctx, &domain.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Amount:        amount,
		Kind:          domain.OrderKindDeposit,
		PaymentSystem: system,
		Status:        domain.OrderStatusPending,
		Description:   fmt.Sprintf("Пополнение баланса через %s", system),
	})
	if err != nil {
		return nil, "", err
	}

	paymentURL, err := p.PaymentURL(ctx, order, returnURL)
	if err != nil {
		zap.L().Warn("payment system unavailable, using placeholder url",
			zap.String("payment_system", string(system)),
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		paymentURL = p.PlaceholderURL(order)
	}

	zap.L().Info("payment initiated",
		zap.String("order_id", order.ID),
		zap.Int64("inv_id", order.InvID),
		zap.Int("user_id", userID),
		zap.Float64("amount", order.Amount),
		zap.String("payment_system", string(system)),
	)
	return order, paymentURL, nil
}

// Confirm applies a verified notification. The conditional pending→paid
// update decides which of several concurrent deliveries credits the balance;
// the others observe a terminal status and report AlreadyProcessed.
func (s *Service) Confirm(ctx context.Context, n domain.Notification) (domain.ConfirmResult, *domain.Order, error) {
	key := n.OrderKey()
	log := zap.L().With(zap.String("payment_system", string(n.Provider())), zap.Stringer("order", key))

	if !n.Succeeded() {
		log.Info("ignoring notification for unsuccessful payment")
		return domain.ConfirmIgnored, nil, nil
	}
	if key.ID != "" {
		if _, err := uuid.Parse(key.ID); err != nil {
			return 0, nil, domain.ErrOrderNotFound
		}
	}

	var (
		result domain.ConfirmResult
		order  *domain.Order
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		paid, err := s.orderRepo.MarkPaid(ctx, n.Provider(), key, n.ExternalID())
		if err != nil {
			return err
		}
		if paid == nil {
			status, err := s.orderRepo.FindStatus(ctx, n.Provider(), key)
			if err != nil {
				return err
			}
			switch status {
			case "":
				return domain.ErrOrderNotFound
			case domain.OrderStatusPaid:
				result = domain.ConfirmAlreadyProcessed
				return nil
			default:
				return fmt.Errorf("order %s has unexpected status %q", key, status)
			}
		}

		if asserted := n.AssertedAmount(); math.Abs(asserted-paid.Amount) >= amountTolerance {
			log.Warn("notification amount differs from order amount, crediting order amount",
				zap.Float64("asserted", asserted),
				zap.Float64("stored", paid.Amount),
			)
		}

		orderID := paid.ID
		if _, err := s.ledger.Apply(ctx, domain.BalanceChange{
			UserID:      paid.UserID,
			Amount:      paid.Amount,
			Source:      domain.TransactionSourcePayment,
			OrderID:     &orderID,
			Description: fmt.Sprintf("Пополнение через %s, заказ %s", paid.PaymentSystem, paid.ID),
		}); err != nil {
			return err
		}

		order = paid
		result = domain.ConfirmCredited
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			log.Error("failed to confirm payment", zap.Error(err))
		}
		return 0, nil, err
	}

	switch result {
	case domain.ConfirmCredited:
		log.Info("payment confirmed, balance credited",
			zap.String("order_id", order.ID),
			zap.Int("user_id", order.UserID),
			zap.Float64("amount", order.Amount),
		)
		s.cache.Set(ctx, order)
	case domain.ConfirmAlreadyProcessed:
		log.Info("payment already processed")
	}
	return result, order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if order, ok := s.cache.Get(ctx, id); ok {
		return order, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if order.Terminal() {
		s.cache.Set(ctx, order)
	}
	return order, nil
}
