package contract

import (
	"context"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
)

// Store persists the catalog snapshot between runs.
type Store interface {
	Load(ctx context.Context) (catalogx.Catalog, error)
	Save(ctx context.Context, plans catalogx.Catalog) error
}

// Scraper derives a catalog from the live source page. It never fails;
// problems degrade to an empty or partially defaulted catalog.
type Scraper interface {
	Scrape(ctx context.Context) catalogx.Catalog
}

// Recommender answers a user's request grounded in the given catalog.
type Recommender interface {
	Recommend(ctx context.Context, userText string, plans catalogx.Catalog) string
}

// Completer performs one text-generation call.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
