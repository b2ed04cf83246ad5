package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Rows are append-only: the log is never updated or deleted through this type.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, date, type, asset, ticker, quantity, unit_price, total_amount, fee, status, created_at`

// ListTransactions returns the whole transaction log in replay order: by date, then by
// creation time, then by insertion order.
func (r *TransactionRepository) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		ORDER BY date ASC, created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// InsertTransaction appends t to the log.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) error {
	query := `
		INSERT INTO "transaction" (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var ticker sql.NullString
	if t.TickerRef != "" {
		ticker = sql.NullString{String: t.TickerRef, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Date.Format("2006-01-02"),
		string(t.Type),
		t.Asset,
		ticker,
		t.Quantity.String(),
		t.UnitPrice.String(),
		t.TotalAmount.String(),
		t.Fee.String(),
		t.Status,
		FormatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		t                                  model.Transaction
		txType                             string
		ticker                             sql.NullString
		dateStr, createdAtStr              string
		quantity, unitPrice, total, feeStr string
	)

	err := row.Scan(
		&t.ID,
		&dateStr,
		&txType,
		&t.Asset,
		&ticker,
		&quantity,
		&unitPrice,
		&total,
		&feeStr,
		&t.Status,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Type = model.TransactionType(txType)
	if ticker.Valid {
		t.TickerRef = ticker.String
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if t.Quantity, err = parseDecimal("quantity", quantity); err != nil {
		return t, err
	}
	if t.UnitPrice, err = parseDecimal("unit_price", unitPrice); err != nil {
		return t, err
	}
	if t.TotalAmount, err = parseDecimal("total_amount", total); err != nil {
		return t, err
	}
	if t.Fee, err = parseDecimal("fee", feeStr); err != nil {
		return t, err
	}

	return t, nil
}
