package balanceservice

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/pg"
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

type BalanceRepo interface {
	GetBalance(ctx context.Context, userID int) (float64, bool, error)
	AddBalance(ctx context.Context, userID int, delta float64) (float64, bool, error)
}

type UserRepo interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type LedgerRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Transaction, error)
}

type PromoRepo interface {
	Find(ctx context.Context, code string) (*domain.PromoCode, error)
	Redeem(ctx context.Context, code string) (float64, bool, error)
	AddActivation(ctx context.Context, userID int, code string) (bool, error)
}

type OutboxRepo interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
}

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

type Service struct {
	balanceRepo BalanceRepo
	userRepo    UserRepo
	ledgerRepo  LedgerRepo
	promoRepo   PromoRepo
	outboxRepo  OutboxRepo
	txManager   pg.TXManager
}

func New(balanceRepo BalanceRepo, userRepo UserRepo, ledgerRepo LedgerRepo, promoRepo PromoRepo, outboxRepo OutboxRepo, txManager pg.TXManager) *Service {
	return &Service{
		balanceRepo: balanceRepo,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		promoRepo:   promoRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
	}
}

// Apply changes the balance and writes the matching ledger row and outbox
// event in one transaction. Called inside an outer transaction it joins it.
func (s *Service) Apply(ctx context.Context, change domain.BalanceChange) (*domain.Transaction, error) {
	if change.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must not be zero", domain.ErrValidation)
	}
	if math.Abs(change.Amount) > domain.MaxAmount {
		return nil, fmt.Errorf("%w: amount exceeds %.2f", domain.ErrValidation, domain.MaxAmount)
	}

	var ledgerTx *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, ok, err := s.balanceRepo.AddBalance(ctx, change.UserID, change.Amount)
		if err != nil {
			return err
		}
		if !ok {
			exists, err := s.userRepo.Exists(ctx, change.UserID)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrUserNotFound
			}
			return domain.ErrInsufficientBalance
		}

		txType := domain.TransactionTypeDeposit
		if change.Amount < 0 {
			txType = domain.TransactionTypeWithdrawal
		}
		ledgerTx, err = s.ledgerRepo.Create(ctx, &domain.Transaction{
			ID:          uuid.NewString(),
			UserID:      change.UserID,
			Amount:      change.Amount,
			Type:        txType,
			Source:      change.Source,
			Status:      domain.TransactionStatusCompleted,
			OrderID:     change.OrderID,
			Description: change.Description,
		})
		if err != nil {
			return err
		}

		event := domain.BalanceChanged{
			TransactionID: ledgerTx.ID,
			UserID:        change.UserID,
			Amount:        change.Amount,
			Balance:       balance,
			Source:        change.Source,
			CreatedAt:     ledgerTx.CreatedAt,
		}
		if change.OrderID != nil {
			event.OrderID = *change.OrderID
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return s.outboxRepo.Create(ctx, &domain.OutboxEvent{
			Topic:   domain.TopicBalanceChanged,
			Key:     strconv.Itoa(change.UserID),
			Payload: payload,
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("balance changed",
		zap.Int("user_id", change.UserID),
		zap.Float64("amount", change.Amount),
		zap.String("source", change.Source),
		zap.String("transaction_id", ledgerTx.ID),
	)
	return ledgerTx, nil
}

// Adjust is the administrative credit or debit. A debit never drives the balance below zero.
func (s *Service) Adjust(ctx context.Context, userID int, amount float64, description string) (*domain.Transaction, error) {
	if description == "" {
		description = "Корректировка баланса администратором"
	}
	tx, err := s.Apply(ctx, domain.BalanceChange{
		UserID:      userID,
		Amount:      amount,
		Source:      domain.TransactionSourceAdmin,
		Description: description,
	})
	if err != nil {
		zap.L().Warn("admin balance adjustment rejected", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (s *Service) ActivatePromo(ctx context.Context, userID int, code string) (*domain.Transaction, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrMissingField
	}

	var tx *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrUserNotFound
		}

		amount, ok, err := s.promoRepo.Redeem(ctx, code)
		if err != nil {
			return err
		}
		if !ok {
			promo, err := s.promoRepo.Find(ctx, code)
			if err != nil {
				return err
			}
			if promo == nil {
				return domain.ErrPromoNotFound
			}
			return domain.ErrPromoExhausted
		}

		inserted, err := s.promoRepo.AddActivation(ctx, userID, code)
		if err != nil {
			return err
		}
		if !inserted {
			return domain.ErrPromoAlreadyUsed
		}

		tx, err = s.Apply(ctx, domain.BalanceChange{
			UserID:      userID,
			Amount:      amount,
			Source:      domain.TransactionSourcePromo,
			Description: fmt.Sprintf("Активация промокода %s", code),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Service) GetBalance(ctx context.Context, userID int) (float64, error) {
	balance, found, err := s.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, err
	}
	if !found {
		return 0, domain.ErrUserNotFound
	}
	return balance, nil
}

// History returns the newest ledger rows first. A non-positive limit means the
// default page size; larger values are capped.
func (s *Service) History(ctx context.Context, userID int, limit int) ([]domain.Transaction, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	transactions, err := s.ledgerRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to get transactions", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return transactions, nil
}
