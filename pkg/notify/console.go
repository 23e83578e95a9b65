package notify

import (
	"context"
	"fmt"
	"io"

	"patch-checker/pkg/version"
)

// Console prints the report for the user running the check.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(_ context.Context, report Report) error {
	if _, err := fmt.Fprintln(c.out, report.Message()); err != nil {
		return err
	}
	if report.Outcome.Kind == version.KindUpdateAvailable {
		_, err := fmt.Fprintf(c.out, "Update page: %s\n", report.Link)
		return err
	}
	return nil
}
