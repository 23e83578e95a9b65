package dd

import (
	"context"
	"net/http"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
)

type client interface {
	CreateEvent(ctx context.Context, body datadogV1.EventCreateRequest) (datadogV1.EventCreateResponse, *http.Response, error)
}

type wrapper struct {
	client *datadog.APIClient
	apiKey string
	appKey string
	site   string
}

// withAuth creates a new context with DataDog API authentication from the request context
func (w wrapper) withAuth(ctx context.Context) context.Context {
	authCtx := datadog.NewDefaultContext(ctx)
	authCtx = context.WithValue(authCtx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: w.apiKey},
		"appKeyAuth": {Key: w.appKey},
	})
	if w.site != "" {
		authCtx = context.WithValue(authCtx, datadog.ContextServerVariables, map[string]string{
			"site": w.site,
		})
	}
	return authCtx
}

func (w wrapper) CreateEvent(ctx context.Context, body datadogV1.EventCreateRequest) (datadogV1.EventCreateResponse, *http.Response, error) {
	eventsApi := datadogV1.NewEventsApi(w.client)
	return eventsApi.CreateEvent(w.withAuth(ctx), body)
}
