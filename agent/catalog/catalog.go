package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// UnknownPlanName is used when a card's name cannot be extracted.
const UnknownPlanName = "Unknown Plan"

var ErrCatalogNotFound = errors.New("catalog snapshot not found")

// Plan is one provider offering. A zero Price means either a free plan or
// a price that failed to parse; the two are not distinguished.
type Plan struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// Catalog is the ordered plan list, in page order.
type Catalog []Plan

// Clone returns a deep copy so callers cannot mutate the agent's catalog.
// Plans are copied as they are; only a missing feature list becomes empty.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return Catalog{}
	}
	out := make(Catalog, len(c))
	for i, p := range c {
		out[i] = p
		out[i].Features = append([]string{}, p.Features...)
	}
	return out
}

// Snapshot is the durable form of a catalog. TotalPlans is informational;
// readers go by Plans.
type Snapshot struct {
	ExtractedAt time.Time `json:"extracted_at"`
	TotalPlans  int       `json:"total_plans"`
	Plans       Catalog   `json:"plans"`
}

func NewSnapshot(plans Catalog, now time.Time) Snapshot {
	plans = plans.Clone()
	return Snapshot{
		ExtractedAt: now,
		TotalPlans:  len(plans),
		Plans:       plans,
	}
}

// decodeSnapshot parses a stored snapshot and returns its plans. A missing
// plans field yields an empty catalog.
func decodeSnapshot(raw []byte) (Catalog, error) {
	var snap struct {
		Plans Catalog `json:"plans"`
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal catalog snapshot: %w", err)
	}
	return snap.Plans.Clone(), nil
}

func encodeSnapshot(plans Catalog, now time.Time) ([]byte, error) {
	payload, err := json.MarshalIndent(NewSnapshot(plans, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	return payload, nil
}
