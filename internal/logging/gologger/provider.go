// Package gologger adapts go-logger to the localization pipeline's logging
// contract so generate, verify, and report runs share one structured backend.
package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out named child loggers for the localization modules
// (pipeline, verify, report) from a single go-logger root.
type Provider struct {
	root *glog.BaseLogger
}

var levelNames = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// NewProvider constructs a logger provider backed by go-logger.
func NewProvider(cfg Config) (*Provider, error) {
	formatOption, err := resolveFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	options := []glog.Option{formatOption}

	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)

	focus := make([]string, 0, len(cfg.Focus))
	for _, name := range cfg.Focus {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			focus = append(focus, trimmed)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

// resolveFormat maps a config format name onto the go-logger output type.
// The empty format means JSON, which keeps run logs machine-parseable for
// batch invocations.
func resolveFormat(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	default:
		return nil, fmt.Errorf("gologger: unknown log format %q", format)
	}
}

// GetLogger satisfies interfaces.LoggerProvider. An empty name yields the
// root logger itself.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &runLogger{inner: inner}
}

// runLogger bridges a go-logger child into the pipeline logging contract.
type runLogger struct {
	inner glog.Logger
}

func (l *runLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *runLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *runLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *runLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *runLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *runLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *runLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}

	if with, ok := l.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return adapt(with.WithFields(copied))
	}

	// Fall back to sorted key/value pairs so field order stays stable.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return adapt(with.With(args...))
	}
	return l
}

func (l *runLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return adapt(l.inner.WithContext(ctx))
}
