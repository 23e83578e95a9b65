// Package dd posts the outcome of every check as a DataDog event, so patch state shows up
// next to the rest of the infrastructure.
package dd

import (
	"context"
	"errors"
	"fmt"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"go.uber.org/zap"

	"patch-checker/pkg/config"
	"patch-checker/pkg/notify"
	"patch-checker/pkg/version"
)

const sourceType = "patch-checker"

type Notifier struct {
	client client
	tags   []string
	logger *zap.Logger
}

func New(cfg config.DataDogConfig, logger *zap.Logger) (*Notifier, error) {
	if cfg.ApiKey == "" || cfg.AppKey == "" {
		return nil, errors.New("can't initialise DataDog client, DD_API_KEY/DD_APP_KEY are not set")
	}
	configuration := datadog.NewConfiguration()
	apiClient := datadog.NewAPIClient(configuration)

	return &Notifier{
		client: wrapper{
			client: apiClient,
			apiKey: cfg.ApiKey,
			appKey: cfg.AppKey,
			site:   cfg.Site,
		},
		tags:   cfg.Tags,
		logger: logger,
	}, nil
}

func (n *Notifier) Notify(ctx context.Context, report notify.Report) error {
	event := buildEvent(report, n.tags)
	n.logger.Debug("Posting DataDog event", zap.String("title", event.Title))

	resp, _, err := n.client.CreateEvent(ctx, event)
	if err != nil {
		return fmt.Errorf("can't post DataDog event: %w", err)
	}
	if resp.Event != nil && resp.Event.Id != nil {
		n.logger.Debug("DataDog event posted", zap.Int64("id", *resp.Event.Id))
	}
	return nil
}

func buildEvent(report notify.Report, tags []string) datadogV1.EventCreateRequest {
	alertType := alertTypeFor(report.Outcome.Kind)
	eventTags := append([]string{
		"outcome:" + string(report.Outcome.Kind),
		"current_version:" + report.Outcome.Current.String(),
		"latest_version:" + report.Outcome.Latest.String(),
	}, tags...)

	return datadogV1.EventCreateRequest{
		Title:          report.Title(),
		Text:           fmt.Sprintf("%s\n%s", report.Message(), report.Link),
		AlertType:      &alertType,
		Tags:           eventTags,
		SourceTypeName: Ptr(sourceType),
		AggregationKey: Ptr(sourceType),
	}
}

func alertTypeFor(kind version.Kind) datadogV1.EventAlertType {
	switch kind {
	case version.KindUpdateAvailable:
		return datadogV1.EVENTALERTTYPE_WARNING
	case version.KindAnomaly:
		return datadogV1.EVENTALERTTYPE_ERROR
	default:
		return datadogV1.EVENTALERTTYPE_SUCCESS
	}
}

// Ptr is a helper routine that allocates a new T value
// to store v and returns a pointer to it.
func Ptr[T any](v T) *T {
	return &v
}
