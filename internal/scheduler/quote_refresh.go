package scheduler

import (
	"context"
	"time"
)

// Refresher rebuilds the portfolio snapshot. Implemented by service.PortfolioService.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// QuoteRefreshJob re-polls quotes for every held ticker and republishes the portfolio snapshot.
type QuoteRefreshJob struct {
	portfolio Refresher
	timeout   time.Duration
}

// NewQuoteRefreshJob creates a QuoteRefreshJob. Each run is bounded by timeout.
func NewQuoteRefreshJob(portfolio Refresher, timeout time.Duration) *QuoteRefreshJob {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &QuoteRefreshJob{portfolio: portfolio, timeout: timeout}
}

// Name returns the job name
func (j *QuoteRefreshJob) Name() string {
	return "quote_refresh"
}

// Run executes one refresh
func (j *QuoteRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	return j.portfolio.Refresh(ctx)
}
