package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

// ChromeFetcher renders the page in a fresh headless Chrome per call. The
// browser process lives only for the duration of Fetch.
type ChromeFetcher struct {
	headless    bool
	navTimeout  time.Duration
	settleDelay time.Duration
	logger      zerolog.Logger
}

func NewChromeFetcher(cfg Config, logger zerolog.Logger) (*ChromeFetcher, error) {
	if cfg.NavTimeout <= 0 {
		return nil, fmt.Errorf("%w: navigation timeout must be positive, got %s", contractx.ErrValidation, cfg.NavTimeout)
	}
	if cfg.SettleDelay < 0 {
		return nil, fmt.Errorf("%w: settle delay must not be negative, got %s", contractx.ErrValidation, cfg.SettleDelay)
	}
	return &ChromeFetcher{
		headless:    cfg.Headless,
		navTimeout:  cfg.NavTimeout,
		settleDelay: cfg.SettleDelay,
		logger:      logger,
	}, nil
}

func (f *ChromeFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.headless),
	)
	// Chrome refuses to start its sandbox as root, which is the norm in containers.
	if os.Geteuid() == 0 {
		opts = append(opts, chromedp.NoSandbox)
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	f.logger.Info().Str("url", pageURL).Msg("navigating")
	if err := f.navigate(tabCtx, pageURL); err != nil {
		return nil, err
	}

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Sleep(f.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: read rendered page: %v", contractx.ErrFetch, err)
	}

	return []byte(html), nil
}

// navigate bounds only the page load; the tab itself must outlive it, so
// the timeout context is derived per action rather than for the tab.
func (f *ChromeFetcher) navigate(tabCtx context.Context, pageURL string) error {
	if err := chromedp.Run(tabCtx); err != nil {
		return fmt.Errorf("%w: start browser: %v", contractx.ErrFetch, err)
	}

	navCtx, cancel := context.WithTimeout(tabCtx, f.navTimeout)
	defer cancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(pageURL)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: navigation timed out after %s", contractx.ErrFetch, f.navTimeout)
		}
		return fmt.Errorf("%w: navigate: %v", contractx.ErrFetch, err)
	}
	return nil
}
