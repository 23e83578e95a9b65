package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"patch-checker/pkg/errs"
)

// BrowserFetcher loads the page in headless Chrome and returns the document once the
// body is ready, so scripts that render the patch list have run.
type BrowserFetcher struct {
	timeout time.Duration
	options []chromedp.ExecAllocatorOption
	logger  *zap.Logger
}

func NewBrowser(timeout time.Duration, logger *zap.Logger) *BrowserFetcher {
	options := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
	)
	return &BrowserFetcher{
		timeout: timeout,
		options: options,
		logger:  logger,
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.logger.Debug("Rendering update page", zap.String("url", url))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.options...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout)
		defer cancel()
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", errs.NewFetchError(url, err)
	}
	if html == "" {
		return "", errs.NewFetchError(url, errs.ErrEmptyBody)
	}

	f.logger.Debug("Rendered update page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}
