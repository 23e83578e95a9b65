package patch_checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"patch-checker/pkg/config"
	"patch-checker/pkg/dd"
	"patch-checker/pkg/errs"
	"patch-checker/pkg/extract"
	"patch-checker/pkg/fetch"
	"patch-checker/pkg/github"
	"patch-checker/pkg/mail"
	"patch-checker/pkg/notify"
	"patch-checker/pkg/opener"
	"patch-checker/pkg/vault"
	"patch-checker/pkg/version"
)

const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitAnomaly = 2
)

type Mailer interface {
	Send(ctx context.Context, body string) error
}

type sink struct {
	name     string
	notifier notify.Notifier
}

type Checker struct {
	cfg        *config.Config
	current    version.Version
	maxVersion version.Version
	fetcher    fetch.Fetcher
	extractor  *extract.Extractor
	sinks      []sink
	mailer     Mailer
	runLog     *RunLog
	out        io.Writer
	openLink   bool
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*Checker)

func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Checker) { c.fetcher = f }
}

// WithNotifier adds a sink after the default ones.
func WithNotifier(name string, n notify.Notifier) Option {
	return func(c *Checker) { c.sinks = append(c.sinks, sink{name, n}) }
}

func WithMailer(m Mailer) Option {
	return func(c *Checker) { c.mailer = m }
}

func WithRunLog(r *RunLog) Option {
	return func(c *Checker) { c.runLog = r }
}

// WithOutput redirects the console sink, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) { c.out = w }
}

// WithOpenLink opens the update page in the browser when an update is available.
func WithOpenLink(open bool) Option {
	return func(c *Checker) { c.openLink = open }
}

func withClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// New wires the checker from a validated config. Sinks that can't be created are logged
// and left out; the check itself still runs.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Checker, error) {
	current, err := version.Parse(cfg.CurrentVersion)
	if err != nil {
		return nil, errs.NewConfigurationError("currentVersion", err.Error())
	}
	maxVersion, err := version.Parse(cfg.MaxUpdateVersion)
	if err != nil {
		return nil, errs.NewConfigurationError("maxUpdateVersion", err.Error())
	}

	c := &Checker{
		cfg:        cfg,
		current:    current,
		maxVersion: maxVersion,
		extractor:  extract.New(logger),
		out:        os.Stdout,
		logger:     logger,
		now:        time.Now,
	}
	// options first so that the default sinks see the final output and flag
	for _, opt := range opts {
		opt(c)
	}
	custom := c.sinks
	c.sinks = c.defaultSinks()
	c.sinks = append(c.sinks, custom...)

	if c.fetcher == nil {
		c.fetcher, err = fetch.New(cfg.FetchMode, cfg.Timeout, logger)
		if err != nil {
			return nil, errs.NewConfigurationError("fetchMode", err.Error())
		}
	}
	if c.mailer == nil && cfg.Mail.Enabled {
		sender, err := mail.New(cfg.Mail, cfg.Timeout)
		if err != nil {
			logger.Error("can't instantiate mail sender", zap.Error(err))
		} else {
			c.mailer = sender
		}
	}
	return c, nil
}

func (c *Checker) defaultSinks() []sink {
	sinks := []sink{{"console", notify.NewConsole(c.out)}}
	if c.cfg.DataDog.Enabled {
		n, err := dd.New(c.cfg.DataDog, c.logger)
		if err != nil {
			c.logger.Error("can't instantiate DataDog notifier", zap.Error(err))
		} else {
			sinks = append(sinks, sink{"datadog", n})
		}
	}
	if c.cfg.GitHub.Enabled {
		n, err := github.New(c.cfg.GitHub, c.cfg.Timeout, c.logger)
		if err != nil {
			c.logger.Error("can't instantiate GitHub notifier", zap.Error(err))
		} else {
			sinks = append(sinks, sink{"github", n})
		}
	}
	if c.openLink {
		sinks = append(sinks, sink{"browser", opener.New(c.logger)})
	}
	return sinks
}

// Run fetches the update page, finds the advertised version and notifies every sink.
// A fetch failure or a page without an acceptable version is returned as an error.
func (c *Checker) Run(ctx context.Context) (notify.Report, error) {
	link := c.cfg.UpdatePage
	c.logger.Debug("checking for updates",
		zap.String("url", link),
		zap.Stringer("current", c.current),
		zap.Stringer("max", c.maxVersion))

	page, err := c.fetch(ctx, link)
	if err != nil {
		c.logger.Error("can't fetch update page", zap.String("url", link), zap.Error(err))
		return notify.Report{}, err
	}

	result := c.extractor.Extract(page, c.maxVersion)
	if !result.Found {
		err := errs.NewVersionNotFound(link)
		c.logger.Error("can't find latest version", zap.Int("failures", len(result.Failures)), zap.Error(err))
		return notify.Report{}, err
	}

	outcome := version.Decide(c.current, result.Version)
	switch outcome.Kind {
	case version.KindAnomaly:
		c.logger.Error("installed patch is newer than advertised",
			zap.Error(errs.NewAnomaly(outcome.Current.String(), outcome.Latest.String())))
	case version.KindUpdateAvailable:
		c.logger.Info("update available", zap.Stringer("current", outcome.Current), zap.Stringer("latest", outcome.Latest))
	default:
		c.logger.Info("up to date", zap.Stringer("current", outcome.Current))
	}

	report := notify.Report{Outcome: outcome, Link: link}
	for _, s := range c.sinks {
		if err := s.notifier.Notify(ctx, report); err != nil {
			c.logger.Error("notification failed", zap.String("sink", s.name), zap.Error(err))
		}
	}
	return report, nil
}

func (c *Checker) fetch(ctx context.Context, link string) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	return c.fetcher.Fetch(ctx, link)
}

// Finalize saves and mails the run log when debug is on or an error was logged.
func (c *Checker) Finalize(ctx context.Context) error {
	return FlushRunLog(ctx, c.cfg, c.runLog, c.mailer, c.logger, c.now())
}

// FlushRunLog saves runLog to cfg.LogDir and mails it when a mailer is given.
// Nothing happens unless debug is on or an error was logged.
func FlushRunLog(ctx context.Context, cfg *config.Config, runLog *RunLog, mailer Mailer, logger *zap.Logger, now time.Time) error {
	if runLog == nil || !(cfg.Debug || runLog.HasErrors()) {
		return nil
	}
	var result []error
	path, err := runLog.Save(cfg.LogDir, now)
	if err != nil {
		result = append(result, err)
	} else {
		logger.Info("run log saved", zap.String("path", path))
	}
	if mailer != nil {
		if err := mailer.Send(ctx, runLog.String()); err != nil {
			result = append(result, fmt.Errorf("can't mail run log: %w", err))
		} else {
			logger.Debug("run log mailed", zap.Strings("to", cfg.Mail.To))
		}
	}
	return errors.Join(result...)
}

// ExitCode maps the result of Run to the process exit code.
func ExitCode(report notify.Report, err error) int {
	if err != nil {
		return ExitFatal
	}
	if report.Outcome.Kind == version.KindAnomaly {
		return ExitAnomaly
	}
	return ExitOK
}

// LoadConfig loads the config file (optional) and env file, fills secrets from Vault when it
// is configured, and validates the result.
func LoadConfig(ctx context.Context, configFile, envFile string, logger *zap.Logger) (*config.Config, error) {
	cfg := config.Default().WithEnvFile(envFile)
	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return nil, errs.WrapConfigurationError(configFile, fmt.Errorf("can't open config file: %w", err))
		}
		defer f.Close()
		cfg.WithReader(f)
	}
	cfg, err := cfg.Load()
	if err != nil {
		return nil, err
	}

	if cfg.Vault.Enabled() && cfg.Vault.Token != "" {
		resolver, err := vault.New(cfg.Vault, cfg.Timeout, logger)
		if err != nil {
			return nil, fmt.Errorf("can't create Vault client: %w", err)
		}
		if err := resolver.Resolve(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}
