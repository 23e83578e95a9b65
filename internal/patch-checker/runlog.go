package patch_checker

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const runLogTimeFormat = "20060102-150405"

// RunLog keeps a plain-text copy of everything logged during a run. It is saved to disk
// and mailed when the run needs attention.
type RunLog struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	hasErrors atomic.Bool
}

func NewRunLog() *RunLog {
	return &RunLog{}
}

// Core returns a zap core writing into the run log at the given level.
func (r *RunLog) Core(level zapcore.LevelEnabler) zapcore.Core {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	return &runLogCore{
		Core: zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(r), level),
		log:  r,
	}
}

// Write implements io.Writer for the encoder output.
func (r *RunLog) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// HasErrors reports whether an entry at error level or above was logged.
func (r *RunLog) HasErrors() bool {
	return r.hasErrors.Load()
}

func (r *RunLog) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// Save writes the log to dir as patch-checker-<timestamp>.log and returns the file path.
func (r *RunLog) Save(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("can't create log directory '%s': %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("patch-checker-%s.log", now.Format(runLogTimeFormat)))
	if err := os.WriteFile(path, []byte(r.String()), 0o644); err != nil {
		return "", fmt.Errorf("can't write log file '%s': %w", path, err)
	}
	return path, nil
}

type runLogCore struct {
	zapcore.Core
	log *RunLog
}

func (c *runLogCore) With(fields []zapcore.Field) zapcore.Core {
	return &runLogCore{Core: c.Core.With(fields), log: c.log}
}

func (c *runLogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *runLogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if ent.Level >= zapcore.ErrorLevel {
		c.log.hasErrors.Store(true)
	}
	return c.Core.Write(ent, fields)
}
