package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/internal/logging/console"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("localegen.pipeline")
	logger = logger.(interfaces.FieldsLogger).WithFields(map[string]any{"module": "localegen.pipeline"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"run_label": "si-2026-03-14-15-09-26",
	})
	logger = logger.WithContext(ctx)

	runID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("pipeline.build.done",
		"run_id", runID,
		"finished_at", time.Date(2026, 3, 14, 15, 10, 0, 0, time.UTC),
	)

	got := strings.TrimSpace(buf.String())
	want := "2026-03-14T15:09:26.535897Z INFO pipeline.build.done finished_at=2026-03-14T15:10:00Z logger=localegen.pipeline module=localegen.pipeline run_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 run_label=si-2026-03-14-15-09-26"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("localegen.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
	if strings.Contains(lines[0], "ignored.debug") {
		t.Fatalf("unexpected debug log present: %s", lines[0])
	}
}

func TestConsoleLogger_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	provider.GetLogger("localegen.test").Warn("verify.structure.mismatch",
		"path", "common_si_msbt_Export/si ss.json",
	)

	if !strings.Contains(buf.String(), `path="common_si_msbt_Export/si ss.json"`) {
		t.Fatalf("expected quoted value, got %s", buf.String())
	}
}
