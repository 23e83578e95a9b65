// Package fetch retrieves the raw text of the vendor documentation page.
package fetch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	ModeHTTP    = "http"
	ModeBrowser = "browser"

	userAgent = "patch-checker/1.0"
)

type Fetcher interface {
	// Fetch returns the full page text. Any failure is an errs.FetchError.
	Fetch(ctx context.Context, url string) (string, error)
}

// New returns the fetcher for the mode: plain HTTP or a headless browser for pages
// that render on the client side.
func New(mode string, timeout time.Duration, logger *zap.Logger) (Fetcher, error) {
	switch mode {
	case "", ModeHTTP:
		return NewHTTP(timeout, logger), nil
	case ModeBrowser:
		return NewBrowser(timeout, logger), nil
	default:
		return nil, fmt.Errorf("unsupported fetch mode '%s'", mode)
	}
}
