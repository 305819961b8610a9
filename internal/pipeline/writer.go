package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// artifactWriter abstracts filesystem specifics for pipeline outputs so dry
// runs and tests can swap the destination.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte) error
}

func newArtifactWriter(dryRun bool) artifactWriter {
	if dryRun {
		return noopWriter{}
	}
	return fsWriter{}
}

type fsWriter struct{}

func (fsWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

func (fsWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("pipeline: write requires path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, string, []byte) error { return nil }
