package main

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

var commands = []subcommands.Command{
	&holdingsCmd{},
	&summaryCmd{},
	&transactionsCmd{},
	&rebalanceCmd{},
}

func commonFlags(f *flag.FlagSet) {
	f.BoolVar(&rawOutput, "raw", false, "print plain Markdown instead of styled output")
	f.BoolVar(&verbose, "v", false, "log debug output to stderr")
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list open positions valued at live prices" }
func (*holdingsCmd) Usage() string {
	return `portfolioctl holdings [-raw]

  Lists every open position with its quantity, average cost, live price and gain.
`
}
func (*holdingsCmd) SetFlags(f *flag.FlagSet) { commonFlags(f) }

func (*holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, c, err := openContainer(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer c.Close()

	positions, err := c.Portfolio.Holdings(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(positions, cfg.Currency))
	return subcommands.ExitSuccess
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display total value, gains and allocation" }
func (*summaryCmd) Usage() string {
	return `portfolioctl summary [-raw]

  Displays the headline metrics of the portfolio and its allocation.
`
}
func (*summaryCmd) SetFlags(f *flag.FlagSet) { commonFlags(f) }

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, c, err := openContainer(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer c.Close()

	view, err := c.Portfolio.View(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(view, cfg.Currency))
	return subcommands.ExitSuccess
}

type transactionsCmd struct {
	offset int
	limit  int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list the transaction log, newest first" }
func (*transactionsCmd) Usage() string {
	return `portfolioctl transactions [-offset n] [-limit n] [-raw]

  Lists recorded transactions, newest first.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	commonFlags(f)
	f.IntVar(&c.offset, "offset", 0, "number of transactions to skip")
	f.IntVar(&c.limit, "limit", 20, fmt.Sprintf("maximum number of transactions to show (max %d)", request.MaxLimit))
}

func (c *transactionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.offset < 0 || c.limit < 1 || c.limit > request.MaxLimit {
		fail(fmt.Errorf("offset must be >= 0 and limit between 1 and %d", request.MaxLimit))
		return subcommands.ExitUsageError
	}
	cfg, container, err := openContainer(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer container.Close()

	txs, err := container.Transaction.GetTransactions(ctx, request.Page{Offset: c.offset, Limit: c.limit})
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(txs, cfg.Currency))
	return subcommands.ExitSuccess
}

// targetFlags collects repeated -t ASSET=PCT flags.
type targetFlags map[string]decimal.Decimal

func (t targetFlags) String() string {
	parts := make([]string, 0, len(t))
	for asset, pct := range t {
		parts = append(parts, asset+"="+pct.String())
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

func (t targetFlags) Set(v string) error {
	asset, pct, ok := strings.Cut(v, "=")
	asset = strings.TrimSpace(asset)
	if !ok || asset == "" {
		return fmt.Errorf("expected ASSET=PCT, got %q", v)
	}
	target, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(pct), "%"))
	if err != nil {
		return fmt.Errorf("invalid percentage %q for %s", pct, asset)
	}
	if err := validation.ValidateSetTarget(asset, request.SetTargetRequest{Target: decimal.NewNullDecimal(target)}); err != nil {
		return fmt.Errorf("%s: %w", asset, err)
	}
	t[asset] = target
	return nil
}

type rebalanceCmd struct {
	targets targetFlags
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "suggest trades that move the portfolio to target weights" }
func (*rebalanceCmd) Usage() string {
	return `portfolioctl rebalance [-t ASSET=PCT]... [-raw]

  Compares current weights with target weights and suggests trades.
  Assets without a -t flag keep their current weight as target.
  Targets are normalized when they do not sum to 100.

  Example: portfolioctl rebalance -t Apple=60 -t Samsung=40
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	commonFlags(f)
	c.targets = targetFlags{}
	f.Var(c.targets, "t", "target weight as ASSET=PCT (repeatable)")
}

func (c *rebalanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, container, err := openContainer(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer container.Close()

	// Apply in a stable order so errors are reproducible.
	assets := make([]string, 0, len(c.targets))
	for asset := range c.targets {
		assets = append(assets, asset)
	}
	slices.Sort(assets)
	for _, asset := range assets {
		if _, err := container.Rebalancing.SetTarget(ctx, asset, c.targets[asset]); err != nil {
			fail(fmt.Errorf("%s: %w", asset, err))
			return subcommands.ExitFailure
		}
	}

	targets, err := container.Rebalancing.Targets(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	suggestions, err := container.Rebalancing.Suggestions(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RebalanceMarkdown(targets, suggestions, cfg.Currency))
	return subcommands.ExitSuccess
}
