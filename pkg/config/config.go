package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"patch-checker/pkg/errs"
)

type lookupFunc func(key string) (string, bool)

func (cfg *Config) WithReader(r io.Reader) *Config {
	if r != nil {
		cfg.reader = r
	}
	return cfg
}

// WithEnvFile sets a dotenv file consulted for variables missing from the environment.
func (cfg *Config) WithEnvFile(path string) *Config {
	cfg.envFile = path
	return cfg
}

// Load loads the config in the following sequence:
// Default < Config file < .env file < ENV variables
// If there is no config file or no .env file, then it is skipped
func (cfg *Config) Load() (*Config, error) {
	var tmp *Config
	var err error
	if cfg.reader != nil {
		tmp, err = cfg.loadFromReader()
		if err != nil {
			return nil, err
		}
	}
	if tmp != nil {
		cfg.merge(tmp)
	}

	lookup, err := cfg.lookup()
	if err != nil {
		return nil, err
	}
	tmp, err = readFromEnv(lookup)
	if err != nil {
		return nil, err
	}
	cfg.merge(tmp)
	return cfg, nil
}

func (cfg *Config) loadFromReader() (*Config, error) {
	decoder := yaml.NewDecoder(cfg.reader)
	decoder.KnownFields(true)
	tmp := &Config{}
	err := decoder.Decode(tmp)
	if err != nil {
		// Check if this is an empty file or no data
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errs.WrapConfigurationError("config file", fmt.Errorf("can't decode: %w", err))
	}
	return tmp, nil
}

// lookup prefers the process environment and falls back to the dotenv file.
func (cfg *Config) lookup() (lookupFunc, error) {
	dotenv := map[string]string{}
	if cfg.envFile != "" {
		values, err := godotenv.Read(cfg.envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, errs.WrapConfigurationError(cfg.envFile, fmt.Errorf("can't read env file: %w", err))
		}
		if values != nil {
			dotenv = values
		}
	}
	return func(key string) (string, bool) {
		if val, ok := os.LookupEnv(key); ok {
			return val, true
		}
		val, ok := dotenv[key]
		return val, ok
	}, nil
}

func readFromEnv(lookup lookupFunc) (*Config, error) {
	cfg := &Config{}
	get := func(key string) string {
		if val, ok := lookup(key); ok {
			return strings.TrimSpace(val)
		}
		return ""
	}

	// Only set values if environment variables are actually set
	cfg.UpdatePage = get("UPDATE_PAGE")
	cfg.MaxUpdateVersion = get("MAX_UPDATE_VERSION")
	cfg.CurrentVersion = get("CURRENT_VERSION")
	cfg.FetchMode = get("FETCH_MODE")
	cfg.LogLevel = get("LOG_LEVEL")
	cfg.LogDir = get("LOG_DIR")
	if timeoutStr := get("TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, errs.NewConfigurationError("TIMEOUT", fmt.Sprintf("invalid duration value: %s", timeoutStr))
		}
		cfg.Timeout = timeout
	}
	if debugStr := get("DEBUG"); debugStr != "" {
		debug, err := strconv.ParseBool(debugStr)
		if err != nil {
			return nil, errs.NewConfigurationError("DEBUG", fmt.Sprintf("invalid value: %s", debugStr))
		}
		cfg.Debug = debug
		cfg.debugSet = true
	}

	cfg.Mail.Server = get("MAIL_SERVER")
	cfg.Mail.From = get("MAIL_FROM")
	cfg.Mail.To = splitList(get("MAIL_TO"))
	cfg.Mail.CC = splitList(get("MAIL_CC"))
	cfg.Mail.Subject = get("MAIL_SUBJECT")
	cfg.Mail.Username = get("MAIL_USERNAME")
	cfg.Mail.Password = get("MAIL_PASSWORD")
	if cfg.Mail.Server != "" {
		cfg.Mail.Enabled = true
	}

	cfg.DataDog.ApiKey = get("DD_API_KEY")
	cfg.DataDog.AppKey = get("DD_APP_KEY")
	cfg.DataDog.Site = get("DD_SITE")

	cfg.GitHub.Token = get("GITHUB_TOKEN")

	cfg.Vault.Address = get("VAULT_ADDR")
	cfg.Vault.Token = get("VAULT_TOKEN")
	cfg.Vault.Path = get("VAULT_PATH")

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.TrimSuffix(s, ","), ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// merge merges this config with another config
// if another config has empty values, then original values are not overwritten
func (cfg *Config) merge(config *Config) {
	if config == nil {
		return
	}
	mergeString(&cfg.UpdatePage, config.UpdatePage)
	mergeString(&cfg.MaxUpdateVersion, config.MaxUpdateVersion)
	mergeString(&cfg.CurrentVersion, config.CurrentVersion)
	mergeString(&cfg.FetchMode, config.FetchMode)
	mergeString(&cfg.LogLevel, config.LogLevel)
	mergeString(&cfg.LogDir, config.LogDir)
	if config.Timeout != 0 {
		cfg.Timeout = config.Timeout
	}
	if config.debugSet || config.Debug {
		cfg.Debug = config.Debug
	}

	if config.Mail.Enabled {
		cfg.Mail.Enabled = true
	}
	mergeString(&cfg.Mail.Server, config.Mail.Server)
	mergeString(&cfg.Mail.From, config.Mail.From)
	mergeString(&cfg.Mail.Subject, config.Mail.Subject)
	mergeString(&cfg.Mail.Username, config.Mail.Username)
	mergeString(&cfg.Mail.Password, config.Mail.Password)
	if len(config.Mail.To) != 0 {
		cfg.Mail.To = config.Mail.To
	}
	if len(config.Mail.CC) != 0 {
		cfg.Mail.CC = config.Mail.CC
	}

	if config.DataDog.Enabled {
		cfg.DataDog.Enabled = true
	}
	mergeString(&cfg.DataDog.Site, config.DataDog.Site)
	mergeString(&cfg.DataDog.ApiKey, config.DataDog.ApiKey)
	mergeString(&cfg.DataDog.AppKey, config.DataDog.AppKey)
	if len(config.DataDog.Tags) != 0 {
		cfg.DataDog.Tags = config.DataDog.Tags
	}

	if config.GitHub.Enabled {
		cfg.GitHub.Enabled = true
	}
	mergeString(&cfg.GitHub.Url, config.GitHub.Url)
	mergeString(&cfg.GitHub.Owner, config.GitHub.Owner)
	mergeString(&cfg.GitHub.Repo, config.GitHub.Repo)
	mergeString(&cfg.GitHub.Token, config.GitHub.Token)
	if len(config.GitHub.Labels) != 0 {
		cfg.GitHub.Labels = config.GitHub.Labels
	}

	mergeString(&cfg.Vault.Address, config.Vault.Address)
	mergeString(&cfg.Vault.Path, config.Vault.Path)
	mergeString(&cfg.Vault.Token, config.Vault.Token)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
