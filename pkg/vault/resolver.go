// Package vault fills secret settings that were not provided by the environment
// from a single Vault secret.
package vault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/vault-client-go"
	"go.uber.org/zap"

	"patch-checker/pkg/config"
)

// Keys looked up in the secret.
const (
	KeyMailPassword = "mail_password"
	KeyDDApiKey     = "dd_api_key"
	KeyDDAppKey     = "dd_app_key"
	KeyGitHubToken  = "github_token"
)

type SecretResolver struct {
	client vaultClient
	path   string
	logger *zap.Logger
}

func New(cfg config.VaultConfig, timeout time.Duration, logger *zap.Logger) (*SecretResolver, error) {
	client, err := vault.New(
		vault.WithAddress(cfg.Address),
		vault.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}
	err = client.SetToken(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &SecretResolver{
		client: &wrapper{client},
		path:   normalizePath(cfg.Path),
		logger: logger,
	}, nil
}

// Resolve reads the secret and sets every secret field of cfg that is still empty.
// Values already present in cfg are never overwritten.
func (r *SecretResolver) Resolve(ctx context.Context, cfg *config.Config) error {
	r.logger.Debug("reading secrets", zap.String("path", r.path))
	resp, err := r.client.Read(ctx, r.path)
	if err != nil {
		var vaultError *vault.ResponseError
		if errors.As(err, &vaultError) && vaultError.StatusCode == http.StatusNotFound {
			return fmt.Errorf("secret '%s' not found", r.path)
		}
		return fmt.Errorf("can't read secret '%s': %w", r.path, err)
	}
	if resp == nil {
		return fmt.Errorf("secret '%s' is empty", r.path)
	}

	data := secretData(resp.Data)
	fill(&cfg.Mail.Password, data, KeyMailPassword)
	fill(&cfg.DataDog.ApiKey, data, KeyDDApiKey)
	fill(&cfg.DataDog.AppKey, data, KeyDDAppKey)
	fill(&cfg.GitHub.Token, data, KeyGitHubToken)
	return nil
}

// secretData unwraps the nested "data" map returned by KV v2 engines.
func secretData(data map[string]interface{}) map[string]interface{} {
	if nested, ok := data["data"].(map[string]interface{}); ok {
		return nested
	}
	return data
}

func fill(field *string, data map[string]interface{}, key string) {
	if *field != "" {
		return
	}
	if value, ok := data[key].(string); ok {
		*field = value
	}
}

func normalizePath(path string) string {
	return "/" + strings.Trim(path, "/")
}
