// Package extract finds the latest patch number in the raw text of the vendor documentation page.
//
// The page is not parsed as HTML. It is split on single spaces and scanned for tokens starting
// with the marker; the token right before a marker carries the version after a fixed-width prefix.
// The first marker on the page belongs to the instructions and is always skipped.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"patch-checker/pkg/errs"
	"patch-checker/pkg/version"
)

const (
	DefaultMarker = "Documentation"
	// DefaultOffset is the width of the label that precedes the digits in the candidate token.
	DefaultOffset = 4
)

// Result of a single extraction. Found is false when no occurrence yielded an acceptable
// version; that is not an error. Failures lists the occurrences that could not be parsed.
type Result struct {
	Version  version.Version
	Found    bool
	Failures []error
}

type Extractor struct {
	marker string
	offset int
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{
		marker: DefaultMarker,
		offset: DefaultOffset,
		logger: logger,
	}
}

// Extract runs the default extractor without logging.
func Extract(page string, maxVersion version.Version) Result {
	return New(zap.NewNop()).Extract(page, maxVersion)
}

// Extract scans page for the marker and returns the first version after the skipped first
// occurrence that is below maxVersion + 1.
func (e *Extractor) Extract(page string, maxVersion version.Version) Result {
	var result Result
	ceiling := maxVersion.Ceiling()
	ignoredFirst := false

	tokens := strings.Split(page, " ")
	for i, token := range tokens {
		if !hasPrefixFold(token, e.marker) {
			continue
		}
		if !ignoredFirst {
			// the first occurrence is the instructions section, not a patch
			ignoredFirst = true
			e.logger.Debug("skipping first marker occurrence", zap.Int("token", i))
			continue
		}

		candidate, err := e.candidate(tokens, i)
		if err != nil {
			result.Failures = append(result.Failures, err)
			e.logger.Error("can't read version candidate", zap.Error(err))
			continue
		}
		if !candidate.Decimal().LessThan(ceiling) {
			e.logger.Debug("candidate is above the allowed version",
				zap.String("candidate", candidate.String()),
				zap.String("maxVersion", maxVersion.String()),
				zap.Int("token", i))
			continue
		}

		e.logger.Debug("version found", zap.String("version", candidate.String()), zap.Int("token", i))
		result.Version = candidate
		result.Found = true
		return result
	}
	return result
}

func (e *Extractor) candidate(tokens []string, i int) (version.Version, error) {
	// unreachable from Extract, the match at index 0 is always the skipped first one
	if i == 0 {
		return version.Version{}, errs.NewExtractionParseError(i, "", errors.New("no preceding token"))
	}
	prev := tokens[i-1]
	if len(prev) <= e.offset {
		return version.Version{}, errs.NewExtractionParseError(i, prev,
			fmt.Errorf("preceding token is shorter than %d characters", e.offset+1))
	}
	v, err := version.Parse(prev[e.offset:])
	if err != nil {
		return version.Version{}, errs.NewExtractionParseError(i, prev, err)
	}
	return v, nil
}

func hasPrefixFold(token, prefix string) bool {
	return len(token) >= len(prefix) && strings.EqualFold(token[:len(prefix)], prefix)
}
