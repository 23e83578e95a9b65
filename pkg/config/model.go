package config

import (
	"errors"
	"io"
	"time"

	"patch-checker/pkg/errs"
	"patch-checker/pkg/regex"
	"patch-checker/pkg/version"
)

type validator interface {
	validate() []error
}

type Config struct {
	UpdatePage       string        `yaml:"updatePage"`
	MaxUpdateVersion string        `yaml:"maxUpdateVersion"`
	CurrentVersion   string        `yaml:"currentVersion"`
	Timeout          time.Duration `yaml:"timeout"`
	FetchMode        string        `yaml:"fetchMode"`
	Debug            bool          `yaml:"debug"`
	LogLevel         string        `yaml:"logLevel"`
	LogDir           string        `yaml:"logDir"`
	Mail             MailConfig    `yaml:"mail"`
	DataDog          DataDogConfig `yaml:"datadog"`
	GitHub           GitHubConfig  `yaml:"github"`
	Vault            VaultConfig   `yaml:"vault"`
	reader           io.Reader
	envFile          string
	// debugSet marks Debug as explicitly given, so false can override a true from the file
	debugSet         bool
}

func (cfg *Config) validate() []error {
	var result []error
	if cfg.UpdatePage == "" {
		result = append(result, errs.NewConfigurationError("updatePage", "is not set"))
	} else if !regex.Url.MatchString(cfg.UpdatePage) {
		result = append(result, errs.NewConfigurationError("updatePage", "is not an http(s) url"))
	}
	if cfg.MaxUpdateVersion == "" {
		result = append(result, errs.NewConfigurationError("maxUpdateVersion", "is not set"))
	} else if _, err := version.Parse(cfg.MaxUpdateVersion); err != nil {
		result = append(result, errs.NewConfigurationError("maxUpdateVersion", err.Error()))
	}
	if _, err := version.Parse(cfg.CurrentVersion); err != nil {
		result = append(result, errs.NewConfigurationError("currentVersion", err.Error()))
	}
	if cfg.Timeout < 0 {
		result = append(result, errs.NewConfigurationError("timeout", "must not be negative"))
	}
	switch cfg.FetchMode {
	case "http", "browser":
	default:
		result = append(result, errs.NewConfigurationError("fetchMode", "must be 'http' or 'browser'"))
	}

	sections := []validator{
		cfg.Mail,
		cfg.DataDog,
		cfg.GitHub,
		cfg.Vault,
	}
	for _, section := range sections {
		result = append(result, section.validate()...)
	}
	return result
}

type MailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Server   string   `yaml:"server"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
	CC       []string `yaml:"cc"`
	Subject  string   `yaml:"subject"`
	Username string   `yaml:"username"`
	Password string   `yaml:"-"`
}

func (cfg MailConfig) validate() []error {
	if !cfg.Enabled {
		return nil
	}
	var result []error
	if cfg.Server == "" {
		result = append(result, errs.NewConfigurationError("mail.server", "is not set but mail is enabled"))
	}
	if cfg.From == "" {
		result = append(result, errs.NewConfigurationError("mail.from", "is not set but mail is enabled"))
	}
	if len(cfg.To) == 0 {
		result = append(result, errs.NewConfigurationError("mail.to", "is not set but mail is enabled"))
	}
	return result
}

type DataDogConfig struct {
	Enabled bool     `yaml:"enabled"`
	Site    string   `yaml:"site"`
	Tags    []string `yaml:"tags"`
	ApiKey  string   `yaml:"-"`
	AppKey  string   `yaml:"-"`
}

func (cfg DataDogConfig) validate() []error {
	if cfg.Enabled && (cfg.ApiKey == "" || cfg.AppKey == "") {
		return []error{errs.NewConfigurationError("datadog", "is enabled but DD_API_KEY/DD_APP_KEY are not set")}
	}
	return nil
}

type GitHubConfig struct {
	Enabled bool     `yaml:"enabled"`
	Url     string   `yaml:"url"`
	Owner   string   `yaml:"owner"`
	Repo    string   `yaml:"repo"`
	Labels  []string `yaml:"labels"`
	Token   string   `yaml:"-"`
}

func (cfg GitHubConfig) validate() []error {
	if !cfg.Enabled {
		return nil
	}
	var result []error
	if cfg.Owner == "" || cfg.Repo == "" {
		result = append(result, errs.NewConfigurationError("github", "is enabled but owner/repo are not set"))
	}
	if cfg.Token == "" {
		result = append(result, errs.NewConfigurationError("github", "is enabled but GITHUB_TOKEN is not set"))
	}
	return result
}

type VaultConfig struct {
	Address string `yaml:"address"`
	Path    string `yaml:"path"`
	Token   string `yaml:"-"`
}

// Enabled reports whether secrets should be read from Vault.
func (cfg VaultConfig) Enabled() bool {
	return cfg.Address != ""
}

func (cfg VaultConfig) validate() []error {
	if !cfg.Enabled() {
		return nil
	}
	var result []error
	if cfg.Token == "" {
		result = append(result, errs.NewConfigurationError("vault", "address is set but VAULT_TOKEN is not set"))
	}
	if cfg.Path == "" {
		result = append(result, errs.NewConfigurationError("vault.path", "is not set"))
	}
	return result
}

// Validate returns every configuration problem found, joined. Each of them is an
// errs.ConfigurationError.
func (cfg *Config) Validate() error {
	return errors.Join(cfg.validate()...)
}

// Default generates default config
func Default() *Config {
	return &Config{
		CurrentVersion: "13.0",
		Timeout:        30 * time.Second,
		FetchMode:      "http",
		LogLevel:       "info",
		LogDir:         ".",
		Mail: MailConfig{
			Subject: "patch-checker report",
		},
		Vault: VaultConfig{
			Path: "secret/data/patch-checker",
		},
	}
}
