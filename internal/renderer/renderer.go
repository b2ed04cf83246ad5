// Package renderer turns portfolio views into Markdown documents for the terminal.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/format"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// HoldingsMarkdown renders one row per held asset. Prices that are not live are
// marked with an asterisk and explained in a footnote.
func HoldingsMarkdown(positions []model.ValuedPosition, currency string) string {
	var buf bytes.Buffer
	buf.WriteString("# Holdings\n\n")

	if len(positions) == 0 {
		buf.WriteString("_No open positions._\n")
		return buf.String()
	}

	t := newTable("Asset", "Ticker", "Quantity", "Avg. Cost", "Price", "Value", "Gain / Loss", "Return", "Day").
		alignRight(2, 3, 4, 5, 6, 7, 8)
	stale := false
	for _, p := range positions {
		price := format.Money(p.CurrentPrice, currency)
		if !p.LivePrice {
			price += "*"
			stale = true
		}
		t.row(
			p.Asset,
			p.TickerRef,
			format.Quantity(p.Quantity),
			format.Money(p.AverageCost, currency),
			price,
			format.Money(p.MarketValue, currency),
			format.SignedMoney(p.UnrealizedPnL, currency),
			format.Percent(p.UnrealizedPnLPercent),
			format.Percent(p.DayChangePercent),
		)
	}
	t.write(&buf)

	if stale {
		buf.WriteString("\\* no live quote, valued at average cost\n")
	}
	return buf.String()
}

// SummaryMarkdown renders the headline metrics and the allocation breakdown.
func SummaryMarkdown(view model.PortfolioView, currency string) string {
	var buf bytes.Buffer
	s := view.Summary

	fmt.Fprintf(&buf, "# Portfolio Summary\n\n")
	fmt.Fprintf(&buf, "Generated %s\n\n", view.GeneratedAt.Local().Format(time.DateTime))

	t := newTable("Metric", "Value").alignRight(1)
	t.row("**Total Value**", "**"+format.Money(s.TotalValue, currency)+"**")
	t.row("Holdings", format.Money(s.HoldingsValue, currency))
	t.row("Cash", format.Money(s.Cash, currency))
	t.row("Unrealized Gain / Loss", format.SignedMoney(s.UnrealizedPnL, currency))
	t.row("Realized Gain / Loss", format.SignedMoney(s.RealizedPnL, currency))
	t.row("Today", fmt.Sprintf("%s (%s)", format.SignedMoney(s.TodaysChange, currency), format.Percent(s.TodaysChangePercent)))
	t.write(&buf)

	if len(view.Allocation) > 0 {
		buf.WriteString("## Allocation\n\n")
		a := newTable("Asset", "Weight").alignRight(1)
		for _, slice := range view.Allocation {
			a.row(slice.Name, format.Weight(slice.Value))
		}
		a.write(&buf)
	}
	return buf.String()
}

// TransactionsMarkdown renders the log in the order given.
func TransactionsMarkdown(transactions []model.Transaction, currency string) string {
	var buf bytes.Buffer
	buf.WriteString("# Transactions\n\n")

	if len(transactions) == 0 {
		buf.WriteString("_No transactions._\n")
		return buf.String()
	}

	t := newTable("Date", "Type", "Asset", "Quantity", "Price", "Total", "Fee").alignRight(3, 4, 5, 6)
	for _, tx := range transactions {
		asset := tx.Asset
		if tx.TickerRef != "" {
			asset = fmt.Sprintf("%s (%s)", tx.Asset, tx.TickerRef)
		}
		t.row(
			tx.Date.Format(time.DateOnly),
			string(tx.Type),
			asset,
			format.Quantity(tx.Quantity),
			format.Money(tx.UnitPrice, currency),
			format.Money(tx.TotalAmount, currency),
			format.Money(tx.Fee, currency),
		)
	}
	t.write(&buf)
	return buf.String()
}

// RebalanceMarkdown renders current against target weights followed by the suggested trades.
func RebalanceMarkdown(targets []model.TargetAllocation, suggestions []model.RebalancingSuggestion, currency string) string {
	var buf bytes.Buffer
	buf.WriteString("# Rebalancing\n\n")

	if len(targets) == 0 {
		buf.WriteString("_No open positions._\n")
		return buf.String()
	}

	t := newTable("Asset", "Current", "Target").alignRight(1, 2)
	for _, a := range targets {
		t.row(a.Asset, format.Weight(a.Current), format.Weight(a.Target))
	}
	t.write(&buf)

	buf.WriteString("## Suggestions\n\n")
	if len(suggestions) == 0 {
		buf.WriteString("_Portfolio is within target._\n")
		return buf.String()
	}

	s := newTable("Asset", "Action", "Amount", "Quantity", "Urgency", "Reason").alignRight(2, 3)
	for _, sg := range suggestions {
		qty := "n/a"
		if sg.Quantity != nil {
			qty = format.Quantity(*sg.Quantity)
		}
		urgency := sg.Urgency
		if urgency == model.UrgencyHigh {
			urgency = "**" + urgency + "**"
		}
		s.row(sg.Asset, string(sg.Type), format.Money(sg.Amount, currency), qty, urgency, sg.Reason)
	}
	s.write(&buf)
	return buf.String()
}
