package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mendableai/firecrawl-go"

	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

// FirecrawlFetcher delegates rendering to the hosted Firecrawl scrape API
// and returns the raw page HTML.
type FirecrawlFetcher struct {
	app       *firecrawl.FirecrawlApp
	waitForMS int
	timeoutMS int
	userAgent string
}

func NewFirecrawlFetcher(cfg Config) (*FirecrawlFetcher, error) {
	apiKey := strings.TrimSpace(cfg.FirecrawlAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: firecrawl api key is required", contractx.ErrValidation)
	}

	app, err := firecrawl.NewFirecrawlApp(apiKey, strings.TrimRight(cfg.FirecrawlAPIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("initialize firecrawl: %w", err)
	}

	return &FirecrawlFetcher{
		app:       app,
		waitForMS: int(cfg.SettleDelay.Milliseconds()),
		timeoutMS: int(cfg.NavTimeout.Milliseconds()),
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	}, nil
}

// Fetch blocks until Firecrawl responds; the SDK call is not context-aware,
// so ctx is only checked before the request.
func (f *FirecrawlFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrFetch, err)
	}

	params := &firecrawl.ScrapeParams{
		Formats: []string{"rawHtml"},
		Headers: &map[string]string{
			"User-Agent": f.userAgent,
		},
		WaitFor: &f.waitForMS,
		Timeout: &f.timeoutMS,
	}

	doc, err := f.app.ScrapeURL(pageURL, params)
	if err != nil {
		return nil, fmt.Errorf("%w: firecrawl scrape: %v", contractx.ErrFetch, err)
	}
	if doc == nil || strings.TrimSpace(doc.RawHTML) == "" {
		return nil, fmt.Errorf("%w: %v", contractx.ErrFetch, errors.New("firecrawl returned no html"))
	}

	return []byte(doc.RawHTML), nil
}
