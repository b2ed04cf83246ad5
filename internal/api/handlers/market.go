package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// MarketHandler serves single quotes and market news.
type MarketHandler struct {
	portfolioService *service.PortfolioService
	newsService      *service.NewsService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(portfolioService *service.PortfolioService, newsService *service.NewsService) *MarketHandler {
	return &MarketHandler{
		portfolioService: portfolioService,
		newsService:      newsService,
	}
}

// Quote handles GET requests for the quote of one ticker.
// A provider failure is not an HTTP error: the result carries status "failed".
//
// Endpoint: GET /api/quote/{ticker}
// Response: 200 OK with QuoteResult
// Error: 400 Bad Request if the ticker is malformed (validated by middleware)
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))
	response.RespondJSON(w, http.StatusOK, h.portfolioService.Quote(r.Context(), ticker))
}

// News handles GET requests for general market news.
//
// Endpoint: GET /api/news
// Response: 200 OK with array of NewsItem, empty when the provider is unavailable
func (h *MarketHandler) News(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.newsService.GeneralNews(r.Context()))
}
