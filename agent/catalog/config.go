package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	BackendFile    = "file"
	BackendUpstash = "upstash"
)

type StoreConfig struct {
	Backend      string        `split_words:"true" default:"file"`
	Path         string        `split_words:"true"`
	UpstashURL   string        `envconfig:"UPSTASH_URL"`
	UpstashToken string        `envconfig:"UPSTASH_TOKEN"`
	UpstashKey   string        `envconfig:"UPSTASH_KEY"`
	TTL          time.Duration `envconfig:"TTL" default:"0s"`
	Timeout      time.Duration `split_words:"true" default:"10s"`
}

// Backend is implemented by FileStore and UpstashStore.
type Backend interface {
	Load(ctx context.Context) (Catalog, error)
	Save(ctx context.Context, plans Catalog) error
}

var (
	_ Backend = (*FileStore)(nil)
	_ Backend = (*UpstashStore)(nil)
)

func NewStore(cfg StoreConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		return NewFileStore(strings.TrimSpace(cfg.Path))
	case BackendUpstash:
		return NewUpstashStore(cfg.UpstashURL, cfg.UpstashToken, cfg.Timeout,
			WithKey(cfg.UpstashKey),
			WithTTL(cfg.TTL),
		)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
