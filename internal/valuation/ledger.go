package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Ledger is the result of replaying a transaction log.
type Ledger struct {
	Positions   []model.Position // Open positions in order of first appearance
	Cash        decimal.Decimal  // Running cash balance
	RealizedPnL decimal.Decimal  // Realized gain/loss of all sales
}

// Replay folds the transaction log into open positions and the cash ledger in a single pass,
// so that positions and cash are always derived from the same log.
//
// Transactions are applied in the order given. Callers must pass them in chronological
// order; same-day ordering only matters when buys and sells at different prices interleave.
//
// Transaction Processing Logic:
//   - BUY: adds quantity and quantity*unitPrice + fee to the cost basis
//   - SELL: removes quantity at the current average cost, which stays unchanged
//   - DEPOSIT / WITHDRAWAL: only move cash
//
// A SELL larger than the held quantity floors quantity and cost basis at zero. The log is
// trusted, so no transaction is ever rejected here.
func Replay(transactions []model.Transaction) Ledger {
	r := newReplayer()
	for _, tx := range transactions {
		r.apply(tx)
	}
	return r.ledger()
}

// ReplayEach replays the log like Replay and calls fn with the ledger as it stands just before
// each transaction at index from or later. The replay stops at the first error fn returns.
func ReplayEach(transactions []model.Transaction, from int, fn func(before Ledger, tx model.Transaction) error) error {
	r := newReplayer()
	for i, tx := range transactions {
		if i >= from {
			if err := fn(r.ledger(), tx); err != nil {
				return err
			}
		}
		r.apply(tx)
	}
	return nil
}

type replayer struct {
	book     map[string]*model.Position
	order    []string
	cash     decimal.Decimal
	realized decimal.Decimal
}

func newReplayer() *replayer {
	return &replayer{
		book:     make(map[string]*model.Position),
		cash:     decimal.Zero,
		realized: decimal.Zero,
	}
}

func (r *replayer) apply(tx model.Transaction) {
	r.cash = r.cash.Add(cashDelta(tx))

	if tx.Type.IsCashMovement() {
		return
	}

	p, ok := r.book[tx.Asset]
	if !ok {
		p = &model.Position{Asset: tx.Asset}
		r.book[tx.Asset] = p
		r.order = append(r.order, tx.Asset)
	}
	if p.TickerRef == "" && tx.TickerRef != "" {
		p.TickerRef = tx.TickerRef
	}

	switch tx.Type {
	case model.TransactionBuy:
		p.TotalCost = p.TotalCost.Add(tx.Gross()).Add(tx.Fee)
		p.Quantity = p.Quantity.Add(tx.Quantity)
	case model.TransactionSell:
		r.realized = r.realized.Add(applySell(p, tx))
	}
}

func (r *replayer) ledger() Ledger {
	positions := make([]model.Position, 0, len(r.order))
	for _, asset := range r.order {
		p := r.book[asset]
		if p.Quantity.IsPositive() {
			positions = append(positions, *p)
		}
	}

	return Ledger{
		Positions:   positions,
		Cash:        r.cash,
		RealizedPnL: r.realized,
	}
}

// applySell reduces p by the sold quantity at the current average cost and returns the
// realized gain of the sale.
func applySell(p *model.Position, tx model.Transaction) decimal.Decimal {
	avg := p.AverageCost()
	sold := decimal.Min(tx.Quantity, p.Quantity)
	if !sold.IsPositive() {
		return decimal.Zero
	}

	// Rebuilding the cost from the average keeps AverageCost exact across sales.
	p.Quantity = p.Quantity.Sub(sold)
	p.TotalCost = avg.Mul(p.Quantity)

	proceeds := sold.Mul(tx.UnitPrice).Sub(tx.Fee)
	return proceeds.Sub(avg.Mul(sold))
}

// cashDelta is the effect of one transaction on the cash ledger.
func cashDelta(tx model.Transaction) decimal.Decimal {
	switch tx.Type {
	case model.TransactionDeposit:
		return tx.Quantity
	case model.TransactionWithdrawal:
		return tx.Quantity.Neg()
	case model.TransactionBuy:
		return tx.Gross().Add(tx.Fee).Neg()
	case model.TransactionSell:
		return tx.Gross().Sub(tx.Fee)
	default:
		return decimal.Zero
	}
}

// BuildPositions returns the open positions of the log keyed by asset name.
func BuildPositions(transactions []model.Transaction) map[string]model.Position {
	ledger := Replay(transactions)
	positions := make(map[string]model.Position, len(ledger.Positions))
	for _, p := range ledger.Positions {
		positions[p.Asset] = p
	}
	return positions
}

// CashBalance replays the log into the running cash balance.
func CashBalance(transactions []model.Transaction) decimal.Decimal {
	return Replay(transactions).Cash
}

// Tickers returns the distinct quote tickers of the given positions in order.
// Positions without a ticker are skipped.
func Tickers(positions []model.Position) []string {
	seen := make(map[string]bool, len(positions))
	tickers := make([]string, 0, len(positions))
	for _, p := range positions {
		if p.TickerRef == "" || seen[p.TickerRef] {
			continue
		}
		seen[p.TickerRef] = true
		tickers = append(tickers, p.TickerRef)
	}
	return tickers
}
