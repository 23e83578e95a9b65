package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"patch-checker/pkg/errs"
)

// maxPageSize bounds the body read; vendor pages are far below it.
const maxPageSize = 16 << 20

type HTTPFetcher struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTP(timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	httpClient := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			logger.Debug("redirecting", zap.String("to", req.URL.String()), zap.Int("hops", len(via)))
			redirectLimit := 10
			if len(via) >= redirectLimit {
				return fmt.Errorf("stopped after %d redirects", redirectLimit)
			}
			for k, vs := range via[0].Header {
				if req.Header.Get(k) == "" {
					for _, v := range vs {
						req.Header.Add(k, v)
					}
				}
			}
			return nil
		},
	}
	return &HTTPFetcher{
		httpClient: httpClient,
		logger:     logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.logger.Debug("Fetching update page", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errs.NewFetchError(url, err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", errs.NewFetchError(url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Info("error closing body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.NewFetchError(url, &StatusCodeError{StatusCode: resp.StatusCode, Link: url})
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize+1))
	if err != nil {
		return "", errs.NewFetchError(url, err)
	}
	// a partial page would give a false "not found"
	if len(bodyBytes) > maxPageSize {
		return "", errs.NewFetchError(url, ErrPageTooLarge)
	}
	if len(bodyBytes) == 0 {
		return "", errs.NewFetchError(url, errs.ErrEmptyBody)
	}

	f.logger.Debug("Fetched update page", zap.String("url", url), zap.Int("bytes", len(bodyBytes)))
	return string(bodyBytes), nil
}
