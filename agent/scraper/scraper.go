package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

// Fetcher returns the rendered markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

var (
	_ Fetcher           = (*ChromeFetcher)(nil)
	_ Fetcher           = (*FirecrawlFetcher)(nil)
	_ contractx.Scraper = (*Scraper)(nil)
)

// Scraper fetches the catalog page once per call and extracts plans from it.
type Scraper struct {
	url       string
	fetcher   Fetcher
	extractor *Extractor
	logger    zerolog.Logger
}

func New(pageURL string, fetcher Fetcher, extractor *Extractor, logger zerolog.Logger) *Scraper {
	return &Scraper{
		url:       pageURL,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
	}
}

// NewFromConfig wires the fetcher backend named in cfg.
func NewFromConfig(cfg Config, logger zerolog.Logger) (*Scraper, error) {
	var fetcher Fetcher
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendChrome:
		f, err := NewChromeFetcher(cfg, logger)
		if err != nil {
			return nil, err
		}
		fetcher = f
	case BackendFirecrawl:
		f, err := NewFirecrawlFetcher(cfg)
		if err != nil {
			return nil, err
		}
		fetcher = f
	default:
		return nil, fmt.Errorf("%w: unknown scraper backend %q", contractx.ErrValidation, cfg.Backend)
	}

	return New(cfg.URL, fetcher, NewExtractor(cfg.Selectors(), logger), logger), nil
}

// Scrape never fails. Fetch or parse errors are logged and yield an empty
// catalog; field-level problems are absorbed by the extractor.
func (s *Scraper) Scrape(ctx context.Context) catalogx.Catalog {
	s.logger.Info().Str("url", s.url).Msg("scraping plans")

	markup, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		s.logger.Error().Err(err).Str("stage", "fetch").Msg("scrape failed")
		return catalogx.Catalog{}
	}

	plans, err := s.extractor.Extract(markup)
	if err != nil {
		s.logger.Error().Err(err).Str("stage", "extract").Msg("scrape failed")
		return catalogx.Catalog{}
	}

	s.logger.Info().Int("plans", len(plans)).Msg("scrape complete")
	return plans
}
