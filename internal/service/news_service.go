package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// NewsCacheTTL is how long a fetched headline list is served before refetching.
const NewsCacheTTL = 30 * time.Minute

// NewsService serves market headlines with a short-lived cache.
// Concurrent cache misses share one provider request.
type NewsService struct {
	source NewsSource
	ttl    time.Duration
	log    zerolog.Logger
	group  singleflight.Group

	mu        sync.Mutex
	items     []model.NewsItem
	fetchedAt time.Time
	now       func() time.Time
}

// NewNewsService creates a new NewsService. A nil source yields an empty list.
func NewNewsService(source NewsSource, log zerolog.Logger) *NewsService {
	return &NewsService{
		source: source,
		ttl:    NewsCacheTTL,
		log:    log.With().Str("component", "news").Logger(),
		now:    time.Now,
	}
}

// GeneralNews returns the latest market headlines.
//
// A failed fetch is logged and never surfaces as an error: the last cached list is
// returned if there is one, otherwise an empty list. A caller whose context ends while
// the fetch is in flight gets the same fallback and the fetch still fills the cache.
func (s *NewsService) GeneralNews(ctx context.Context) []model.NewsItem {
	if s.source == nil {
		return []model.NewsItem{}
	}

	if items, fresh := s.cached(); fresh {
		return items
	}

	ch := s.group.DoChan("general", func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx)), nil
	})

	select {
	case res := <-ch:
		return res.Val.([]model.NewsItem)
	case <-ctx.Done():
		return s.fallback()
	}
}

func (s *NewsService) cached() ([]model.NewsItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items, s.items != nil && s.now().Sub(s.fetchedAt) < s.ttl
}

func (s *NewsService) fallback() []model.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items != nil {
		return s.items
	}
	return []model.NewsItem{}
}

// fetch runs without the lock so cache reads never wait on the provider.
func (s *NewsService) fetch(ctx context.Context) []model.NewsItem {
	items, err := s.source.GeneralNews(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to fetch general news")
		return s.fallback()
	}
	if items == nil {
		items = []model.NewsItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.fetchedAt = s.now()
	return items
}
