// Package notify carries the outcome of a check to whoever has to hear about it.
package notify

import (
	"context"
	"fmt"

	"patch-checker/pkg/version"
)

// Report is what every notifier receives: the decided outcome and the page to update from.
type Report struct {
	Outcome version.Outcome
	Link    string
}

type Notifier interface {
	Notify(ctx context.Context, report Report) error
}

// Message is the one-line text shown to the user.
func (r Report) Message() string {
	switch r.Outcome.Kind {
	case version.KindUpToDate:
		return fmt.Sprintf("Currently using patch #%s", r.Outcome.Current)
	case version.KindUpdateAvailable:
		return fmt.Sprintf("Newer version #%s available", r.Outcome.Latest)
	case version.KindAnomaly:
		return fmt.Sprintf("Current patch #%s is newer than latest #%s", r.Outcome.Current, r.Outcome.Latest)
	default:
		return "Unknown patch state"
	}
}

// Title is a short summary for events and tickets.
func (r Report) Title() string {
	switch r.Outcome.Kind {
	case version.KindUpToDate:
		return fmt.Sprintf("Patch #%s is up to date", r.Outcome.Current)
	case version.KindUpdateAvailable:
		return fmt.Sprintf("Update available: patch #%s", r.Outcome.Latest)
	case version.KindAnomaly:
		return fmt.Sprintf("Patch check anomaly: installed #%s, advertised #%s", r.Outcome.Current, r.Outcome.Latest)
	default:
		return "Patch check"
	}
}
