package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// mockNamespace derives stable IDs for mock transactions that carry none.
var mockNamespace = uuid.MustParse("6f1c2a8e-3d7b-4c59-9a0e-2b8f5d4e7c13")

// JSONTransactionSource serves a static transaction log from a mock data file.
// It is read-only: InsertTransaction always fails with apperrors.ErrReadOnlySource.
type JSONTransactionSource struct {
	path         string
	transactions []model.Transaction
}

// jsonTransaction accepts both the dashboard's field names (amount, price, total)
// and the API's (quantity, unitPrice, totalAmount).
type jsonTransaction struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	Type        string              `json:"type"`
	Asset       string              `json:"asset"`
	Ticker      string              `json:"ticker"`
	Amount      decimal.NullDecimal `json:"amount"`
	Quantity    decimal.NullDecimal `json:"quantity"`
	Price       decimal.NullDecimal `json:"price"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
	Total       decimal.NullDecimal `json:"total"`
	TotalAmount decimal.NullDecimal `json:"totalAmount"`
	Fee         decimal.NullDecimal `json:"fee"`
	Status      string              `json:"status"`
}

// NewJSONTransactionSource loads the transactions array found at jsonPath in the file at path.
func NewJSONTransactionSource(path, jsonPath string) (*JSONTransactionSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock data: %w", err)
	}
	transactions, err := ParseMockTransactions(raw, jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mock data %s: %w", path, err)
	}
	return &JSONTransactionSource{path: path, transactions: transactions}, nil
}

// ParseMockTransactions extracts transactions from a mock data document.
// The result is sorted by date; transactions on the same date keep document order.
func ParseMockTransactions(raw []byte, jsonPath string) ([]model.Transaction, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	selected, err := jsonpath.Get(jsonPath, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", jsonPath, err)
	}
	// A path that selects the array itself yields it directly; a wildcard yields the elements.
	if list, ok := selected.([]any); ok && len(list) == 1 {
		if inner, ok := list[0].([]any); ok {
			selected = inner
		}
	}

	encoded, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("error re-encoding %q: %w", jsonPath, err)
	}
	var entries []jsonTransaction
	if err := json.Unmarshal(encoded, &entries); err != nil {
		return nil, fmt.Errorf("%q does not select a list of transactions: %w", jsonPath, err)
	}

	transactions := make([]model.Transaction, 0, len(entries))
	for i, e := range entries {
		t, err := e.toModel(i)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		transactions = append(transactions, t)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})
	return transactions, nil
}

func (e jsonTransaction) toModel(index int) (model.Transaction, error) {
	txType, err := model.ParseTransactionType(e.Type)
	if err != nil {
		return model.Transaction{}, err
	}
	date, err := ParseTime(e.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	quantity := firstValid(e.Quantity, e.Amount)
	unitPrice := firstValid(e.UnitPrice, e.Price)
	asset := strings.TrimSpace(e.Asset)
	if txType.IsCashMovement() {
		asset = model.CashAsset
		if !unitPrice.IsPositive() {
			unitPrice = decimal.NewFromInt(1)
		}
	}

	total := quantity.Mul(unitPrice)
	if t := firstValid(e.TotalAmount, e.Total); !t.IsZero() {
		total = t
	}

	id := e.ID
	if id == "" {
		id = uuid.NewSHA1(mockNamespace, []byte(strconv.Itoa(index))).String()
	}
	status := e.Status
	if status == "" {
		status = model.StatusCompleted
	}

	return model.Transaction{
		ID:          id,
		Date:        date,
		Type:        txType,
		Asset:       asset,
		TickerRef:   strings.TrimSpace(e.Ticker),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: total,
		Fee:         firstValid(e.Fee),
		Status:      status,
		CreatedAt:   date,
	}, nil
}

func firstValid(values ...decimal.NullDecimal) decimal.Decimal {
	for _, v := range values {
		if v.Valid {
			return v.Decimal
		}
	}
	return decimal.Zero
}

// ListTransactions returns a copy of the loaded log in replay order.
func (s *JSONTransactionSource) ListTransactions(_ context.Context) ([]model.Transaction, error) {
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// GetTransaction returns the transaction with the given ID.
func (s *JSONTransactionSource) GetTransaction(_ context.Context, id string) (model.Transaction, error) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, apperrors.ErrTransactionNotFound
}

// InsertTransaction always fails; the mock file is never written.
func (s *JSONTransactionSource) InsertTransaction(_ context.Context, _ model.Transaction) error {
	return fmt.Errorf("%w: %s", apperrors.ErrReadOnlySource, s.path)
}
