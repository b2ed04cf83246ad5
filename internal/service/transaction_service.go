package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// ChangeNotifier is told when the transaction log has changed.
// Implemented by PortfolioService.
type ChangeNotifier interface {
	LogChanged()
}

// TransactionService handles transaction log business logic operations.
type TransactionService struct {
	store    TransactionStore
	notifier ChangeNotifier
	currency string

	// mu serializes the check-then-insert of CreateTransaction.
	mu  sync.Mutex
	now func() time.Time
}

// NewTransactionService creates a new TransactionService.
// currency is only used to format amounts in rejection messages.
// notifier may be nil.
func NewTransactionService(store TransactionStore, notifier ChangeNotifier, currency string) *TransactionService {
	return &TransactionService{
		store:    store,
		notifier: notifier,
		currency: currency,
		now:      time.Now,
	}
}

// GetTransactions returns one page of the transaction log, newest first.
// Transactions on the same date are ordered by creation time, newest first.
func (s *TransactionService) GetTransactions(ctx context.Context, page request.Page) ([]model.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	slices.Reverse(txs)

	if page.Offset >= len(txs) {
		return []model.Transaction{}, nil
	}
	end := len(txs)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return txs[page.Offset:end], nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound if no transaction has that ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransaction, err)
	}
	return tx, nil
}

// CreateTransaction records a new transaction in the log.
//
// The request must already be validated with validation.ValidateCreateTransaction.
// Before inserting, the transaction is placed at its replay position (date, then creation time)
// and checked against the ledger as it stands at that point:
//   - BUY: cash must cover quantity*unitPrice + fee (apperrors.ErrInsufficientCash)
//   - WITHDRAWAL: cash must cover the amount (apperrors.ErrInsufficientCash)
//   - SELL: the asset must be held (apperrors.ErrAssetNotHeld) and the held quantity must
//     cover the sale (apperrors.ErrInsufficientShares)
//
// A backdated transaction must also leave every later transaction covered. Later
// transactions the log already could not cover are not held against it.
//
// Defaults applied:
//   - ID: a new UUID
//   - date: today
//   - DEPOSIT / WITHDRAWAL: asset "cash", unit price 1, fee 0
//   - totalAmount: quantity*unitPrice
//   - status: completed
//
// The check and the insert run under one lock, so two concurrent withdrawals cannot both
// pass against the same balance. After a successful insert the notifier is told.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.Transaction, error) {
	tx, err := s.buildTransaction(req)
	if err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.ListTransactions(ctx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	if err := s.checkAgainstLog(existing, tx); err != nil {
		return model.Transaction{}, err
	}

	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		if errors.Is(err, apperrors.ErrReadOnlySource) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToCreateTransaction, err)
	}

	if s.notifier != nil {
		s.notifier.LogChanged()
	}
	return tx, nil
}

func (s *TransactionService) buildTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	txType, err := model.ParseTransactionType(req.Type)
	if err != nil {
		return model.Transaction{}, err
	}

	now := s.now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid date: %w", err)
		}
	}

	tx := model.Transaction{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      txType,
		Asset:     strings.TrimSpace(req.Asset),
		TickerRef: strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Quantity:  req.QuantityValue().Decimal,
		UnitPrice: req.UnitPriceValue().Decimal,
		Fee:       req.Fee.Decimal,
		Status:    model.StatusCompleted,
		CreatedAt: now,
	}

	if txType.IsCashMovement() {
		tx.Asset = model.CashAsset
		tx.TickerRef = ""
		tx.UnitPrice = decimal.NewFromInt(1)
		tx.Fee = decimal.Zero
	}
	tx.TotalAmount = tx.Gross()

	return tx, nil
}

// checkAgainstLog checks tx at its replay position in existing and re-checks every later
// transaction with tx in place.
func (s *TransactionService) checkAgainstLog(existing []model.Transaction, tx model.Transaction) error {
	at := replayPosition(existing, tx)

	uncovered := make(map[string]bool)
	_ = valuation.ReplayEach(existing, at, func(before valuation.Ledger, next model.Transaction) error {
		if s.checkAgainstLedger(before, next) != nil {
			uncovered[next.ID] = true
		}
		return nil
	})

	placed := slices.Insert(slices.Clone(existing), at, tx)
	return valuation.ReplayEach(placed, at, func(before valuation.Ledger, next model.Transaction) error {
		if next.ID == tx.ID {
			return s.checkAgainstLedger(before, next)
		}
		if uncovered[next.ID] {
			return nil
		}
		if err := s.checkAgainstLedger(before, next); err != nil {
			return fmt.Errorf("%w (breaks the %s %s on %s)", err,
				next.Type, next.Asset, next.Date.Format("2006-01-02"))
		}
		return nil
	})
}

// replayPosition is the index tx takes in a log ordered by date, then creation time.
func replayPosition(existing []model.Transaction, tx model.Transaction) int {
	for i, e := range existing {
		if e.Date.After(tx.Date) || (e.Date.Equal(tx.Date) && e.CreatedAt.After(tx.CreatedAt)) {
			return i
		}
	}
	return len(existing)
}

func (s *TransactionService) checkAgainstLedger(ledger valuation.Ledger, tx model.Transaction) error {
	switch tx.Type {
	case model.TransactionBuy:
		needed := tx.Gross().Add(tx.Fee)
		if needed.GreaterThan(ledger.Cash) {
			return fmt.Errorf("%w: need %s, available %s", apperrors.ErrInsufficientCash,
				format.Money(needed, s.currency), format.Money(ledger.Cash, s.currency))
		}
	case model.TransactionWithdrawal:
		if tx.Quantity.GreaterThan(ledger.Cash) {
			return fmt.Errorf("%w: requested %s, available %s", apperrors.ErrInsufficientCash,
				format.Money(tx.Quantity, s.currency), format.Money(ledger.Cash, s.currency))
		}
	case model.TransactionSell:
		var held *model.Position
		for i := range ledger.Positions {
			if ledger.Positions[i].Asset == tx.Asset {
				held = &ledger.Positions[i]
				break
			}
		}
		if held == nil {
			return fmt.Errorf("%w: %s", apperrors.ErrAssetNotHeld, tx.Asset)
		}
		if tx.Quantity.GreaterThan(held.Quantity) {
			return fmt.Errorf("%w: selling %s of %s, holding %s", apperrors.ErrInsufficientShares,
				format.Quantity(tx.Quantity), tx.Asset, format.Quantity(held.Quantity))
		}
	}
	return nil
}
