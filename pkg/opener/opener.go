// Package opener shows the update page in the user's default browser.
package opener

import (
	"context"
	"fmt"

	"github.com/pkg/browser"
	"go.uber.org/zap"

	"patch-checker/pkg/notify"
	"patch-checker/pkg/version"
)

type Opener struct {
	open   func(url string) error
	logger *zap.Logger
}

func New(logger *zap.Logger) *Opener {
	return &Opener{open: browser.OpenURL, logger: logger}
}

// Notify opens the update page when a newer patch is available.
func (o *Opener) Notify(_ context.Context, report notify.Report) error {
	if report.Outcome.Kind != version.KindUpdateAvailable || report.Link == "" {
		return nil
	}
	o.logger.Debug("opening update page", zap.String("url", report.Link))
	if err := o.open(report.Link); err != nil {
		return fmt.Errorf("can't open '%s': %w", report.Link, err)
	}
	return nil
}
