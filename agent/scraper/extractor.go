package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
)

var (
	errFieldMissing = errors.New("element not found")
	errFieldEmpty   = errors.New("element text is empty")
)

// Extractor turns rendered catalog markup into plans. Every card and every
// field is handled independently: a bad field falls back to its default and
// never stops the remaining fields or cards.
type Extractor struct {
	selectors Selectors
	logger    zerolog.Logger
}

func NewExtractor(selectors Selectors, logger zerolog.Logger) *Extractor {
	return &Extractor{selectors: selectors, logger: logger}
}

func (e *Extractor) Extract(markup []byte) (catalogx.Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	cards := doc.Find(e.selectors.Card)
	e.logger.Info().Int("cards", cards.Length()).Msg("found plan cards")

	plans := make(catalogx.Catalog, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		plan := catalogx.Plan{
			Name:     e.extractName(i, card),
			Price:    e.extractPrice(i, card),
			Features: e.extractFeatures(card),
		}
		e.logger.Debug().Int("card", i).Str("name", plan.Name).Float64("price", plan.Price).Msg("extracted plan")
		plans = append(plans, plan)
	})

	return plans, nil
}

func (e *Extractor) extractName(i int, card *goquery.Selection) string {
	name, err := parseName(card.Find(e.selectors.Name))
	if err != nil {
		e.fieldFailed(i, "name", err)
		return catalogx.UnknownPlanName
	}
	return name
}

func (e *Extractor) extractPrice(i int, card *goquery.Selection) float64 {
	price, err := parsePrice(card.Find(e.selectors.Price))
	if err != nil {
		e.fieldFailed(i, "price", err)
		return 0
	}
	return price
}

func (e *Extractor) extractFeatures(card *goquery.Selection) []string {
	features := []string{}
	card.Find(e.selectors.Feature).Each(func(_ int, s *goquery.Selection) {
		features = append(features, strings.TrimSpace(s.Text()))
	})
	return features
}

func (e *Extractor) fieldFailed(card int, field string, err error) {
	e.logger.Warn().Err(err).Int("card", card).Str("field", field).Msg("field extraction failed, using default")
}

func parseName(sel *goquery.Selection) (string, error) {
	if sel.Length() == 0 {
		return "", errFieldMissing
	}
	name := strings.Join(strings.Fields(sel.First().Text()), " ")
	if name == "" {
		return "", errFieldEmpty
	}
	return name, nil
}

func parsePrice(sel *goquery.Selection) (float64, error) {
	if sel.Length() == 0 {
		return 0, errFieldMissing
	}
	raw := sel.First().Text()
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, "/mo", "")
	cleaned = strings.TrimSpace(cleaned)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}
