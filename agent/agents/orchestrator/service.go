package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

// NoPlansReply is returned when no catalog could be loaded or scraped.
const NoPlansReply = "No plans available. Could not retrieve any plan data."

// Agent owns the in-memory catalog and answers recommendation requests.
//
// The catalog starts empty and is populated at most once per Agent, on the
// first call that needs it: from the store when it holds plans, otherwise
// from a scrape. After that attempt the Agent never scrapes again on its
// own, even if the scrape came back empty; Refresh forces a new scrape.
type Agent struct {
	store       contractx.Store
	scraper     contractx.Scraper
	recommender contractx.Recommender
	logger      zerolog.Logger

	mu      sync.Mutex
	catalog catalogx.Catalog
	loaded  bool
}

func New(
	store contractx.Store,
	scraper contractx.Scraper,
	recommender contractx.Recommender,
	logger zerolog.Logger,
) (*Agent, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	if scraper == nil {
		return nil, errors.New("scraper is required")
	}
	if recommender == nil {
		return nil, errors.New("recommender is required")
	}

	return &Agent{
		store:       store,
		scraper:     scraper,
		recommender: recommender,
		logger:      logger,
		catalog:     catalogx.Catalog{},
	}, nil
}

// Recommend ensures the catalog is populated and asks the recommender for
// advice. An empty catalog short-circuits to NoPlansReply.
func (a *Agent) Recommend(ctx context.Context, userText string) string {
	plans := a.EnsureCatalog(ctx)
	if len(plans) == 0 {
		return NoPlansReply
	}
	return a.recommender.Recommend(ctx, userText, plans)
}

// EnsureCatalog populates the catalog on first use and returns a copy of it.
// Concurrent first callers wait for a single load-or-scrape. The population
// outlives the caller's cancellation: it happens once per Agent, so a caller
// hanging up must not leave the Agent with an empty catalog.
func (a *Agent) EnsureCatalog(ctx context.Context) catalogx.Catalog {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.loaded {
		a.populate(context.WithoutCancel(ctx))
	}
	return a.catalog.Clone()
}

// Plans returns a copy of the current catalog without triggering a load.
func (a *Agent) Plans() catalogx.Catalog {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.catalog.Clone()
}

// Refresh scrapes unconditionally, replaces the catalog and saves it.
func (a *Agent) Refresh(ctx context.Context) catalogx.Catalog {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scrapeAndSave(context.WithoutCancel(ctx))
	a.loaded = true
	return a.catalog.Clone()
}

func (a *Agent) populate(ctx context.Context) {
	plans, err := a.store.Load(ctx)
	switch {
	case err == nil && len(plans) > 0:
		a.catalog = plans
		a.loaded = true
		a.logger.Info().Int("plans", len(plans)).Msg("loaded plans from store")
		return
	case err == nil:
		a.logger.Info().Msg("stored catalog is empty, scraping")
	case errors.Is(err, catalogx.ErrCatalogNotFound):
		a.logger.Info().Msg("no stored catalog, scraping")
	default:
		a.logger.Warn().Err(err).Str("stage", "load").Msg("could not load stored catalog, scraping")
	}

	a.scrapeAndSave(ctx)
	a.loaded = true
}

func (a *Agent) scrapeAndSave(ctx context.Context) {
	plans := a.scraper.Scrape(ctx)
	if plans == nil {
		plans = catalogx.Catalog{}
	}
	a.catalog = plans

	if err := a.store.Save(ctx, plans); err != nil {
		a.logger.Error().Err(err).Str("stage", "save").Msg("could not save catalog")
		return
	}
	a.logger.Info().Int("plans", len(plans)).Msg("saved catalog")
}
