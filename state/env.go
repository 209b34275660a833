// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"wcstyle/config"
)

type envKey struct{}

// LocalEnv keeps everything commands share: configuration, debug report,
// logger and settings for reading stylesheets.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// CodePage of stylesheets, nil for UTF-8
	CodePage encoding.Encoding
	// Inspect stylesheets before scoping them
	Inspect bool

	start         time.Time
	restoreStdLog func()
}

// ContextWithEnv returns ctx carrying fresh LocalEnv.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

// EnvFromContext returns LocalEnv stored by ContextWithEnv. Missing env is a
// programming error.
func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey{}).(*LocalEnv)
	if !ok {
		panic("local environment is not set in context")
	}
	return env
}

// Uptime returns time passed since environment was created.
func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// DecodeText converts stylesheet data to UTF-8 using CodePage.
func (e *LocalEnv) DecodeText(data []byte) ([]byte, error) {
	if e.CodePage == nil {
		return data, nil
	}
	out, err := e.CodePage.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode text: %w", err)
	}
	return out, nil
}

// RedirectStdLog sends output of standard library log to our logger.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log != nil {
		e.restoreStdLog = zap.RedirectStdLog(e.Log)
	}
}

// RestoreStdLog flushes logger and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
