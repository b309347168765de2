package scraper

import "time"

const (
	BackendChrome    = "chrome"
	BackendFirecrawl = "firecrawl"
)

type Config struct {
	URL         string        `envconfig:"URL" default:"https://www.verizon.com/plans/unlimited"`
	Backend     string        `split_words:"true" default:"chrome"`
	Headless    bool          `split_words:"true" default:"true"`
	NavTimeout  time.Duration `split_words:"true" default:"30s"`
	SettleDelay time.Duration `split_words:"true" default:"3s"`

	CardSelector    string `split_words:"true" default:".plan[data-plan]"`
	NameSelector    string `split_words:"true" default:"h3"`
	PriceSelector   string `split_words:"true" default:"[data-plan-price-value=\"full\"]"`
	FeatureSelector string `split_words:"true" default:".feature__title"`

	FirecrawlAPIKey string `envconfig:"FIRECRAWL_API_KEY"`
	FirecrawlAPIURL string `envconfig:"FIRECRAWL_API_URL" default:"https://api.firecrawl.dev"`
}

// Selectors locate plan cards and their fields in the rendered page.
type Selectors struct {
	Card    string
	Name    string
	Price   string
	Feature string
}

var DefaultSelectors = Selectors{
	Card:    ".plan[data-plan]",
	Name:    "h3",
	Price:   `[data-plan-price-value="full"]`,
	Feature: ".feature__title",
}

func (c Config) Selectors() Selectors {
	s := DefaultSelectors
	if c.CardSelector != "" {
		s.Card = c.CardSelector
	}
	if c.NameSelector != "" {
		s.Name = c.NameSelector
	}
	if c.PriceSelector != "" {
		s.Price = c.PriceSelector
	}
	if c.FeatureSelector != "" {
		s.Feature = c.FeatureSelector
	}
	return s
}
