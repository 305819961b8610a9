package localizecmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-localegen/internal/assets"
	"github.com/goliatone/go-localegen/internal/commands"
	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/internal/merge"
	"github.com/goliatone/go-localegen/internal/pipeline"
	"github.com/goliatone/go-localegen/internal/report"
	"github.com/goliatone/go-localegen/internal/verify"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

const (
	generateOperation     = "localize.generate"
	verifyOperation       = "localize.verify"
	rewritePathsOperation = "localize.rewrite_paths"
	formatOperation       = "localize.format"
)

// ErrPipelineRequired is returned when a handler is constructed without its service.
var ErrPipelineRequired = errors.New("localize command: pipeline service is required")

var (
	_ command.Commander[GenerateCommand]     = (*GenerateHandler)(nil)
	_ command.Commander[VerifyCommand]       = (*VerifyHandler)(nil)
	_ command.Commander[RewritePathsCommand] = (*RewritePathsHandler)(nil)
	_ command.Commander[FormatCommand]       = (*FormatHandler)(nil)
)

// GenerateHandler runs the generation pipeline via the shared handler foundation.
type GenerateHandler struct {
	inner *commands.Handler[GenerateCommand]
}

// NewGenerateHandler creates a handler bound to the supplied pipeline service.
// Generation runs are unbounded by default; pass commands.WithTimeout to cap them.
func NewGenerateHandler(service pipeline.Service, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateCommand]) *GenerateHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg GenerateCommand) error {
		if service == nil {
			return ErrPipelineRequired
		}
		result, err := service.Build(ctx, pipeline.BuildOptions{
			Sets:   msg.Sets,
			DryRun: msg.DryRun,
			Force:  msg.Force,
			Notes:  msg.Notes,
		})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"run_id":         result.RunID.String(),
				"files_built":    result.FilesBuilt,
				"files_skipped":  result.FilesSkipped,
				"files_fallback": result.FilesFallback,
				"words_fallback": result.WordsFallback,
				"dry_run":        msg.DryRun,
			}).Info("localize.command.generate.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[GenerateCommand]{
		commands.WithLogger[GenerateCommand](baseLogger),
		commands.WithOperation[GenerateCommand](generateOperation),
		commands.WithTimeout[GenerateCommand](0),
		commands.WithMessageFields(func(msg GenerateCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Sets) > 0 {
				fields["sets"] = strings.Join(msg.Sets, ",")
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *GenerateHandler) Execute(ctx context.Context, msg GenerateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifyTargets names the directory pairs the verify handler compares.
type VerifyTargets struct {
	CommonExportDir string
	CommonOutputDir string
	KoreanExportDir string
	TargetOutputDir string
	TradExportDir   string
	TemplateLocale  assets.Locale
	TargetLocale    assets.Locale
	SourceLocale    assets.Locale
	KoreanLocale    assets.Locale
}

// VerifyHandler runs structure and mapping checks and persists their artifacts.
type VerifyHandler struct {
	inner *commands.Handler[VerifyCommand]
}

// NewVerifyHandler creates a handler bound to a checker and a report writer.
// A nil writer suppresses artifact persistence.
func NewVerifyHandler(checker *verify.Checker, writer *report.Writer, targets VerifyTargets, logger interfaces.Logger, opts ...commands.HandlerOption[VerifyCommand]) *VerifyHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg VerifyCommand) error {
		if checker == nil {
			return errors.New("localize command: checker is required")
		}

		var errs []error
		structure, err := checker.CheckStructure(ctx,
			targets.CommonExportDir, targets.CommonOutputDir,
			targets.TemplateLocale, targets.TargetLocale)
		if err != nil {
			errs = append(errs, err)
		}
		mapping, err := checker.CheckMapping(ctx,
			targets.KoreanExportDir, targets.TargetOutputDir, targets.TradExportDir,
			targets.KoreanLocale, targets.TargetLocale, targets.SourceLocale)
		if err != nil {
			errs = append(errs, err)
		}

		if writer != nil && !msg.SkipReports {
			if err := writer.WriteStructureCheck(structure); err != nil {
				errs = append(errs, err)
			}
			if err := writer.WriteMappingCheck(mapping); err != nil {
				errs = append(errs, err)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"structure_files": structure.Summary.FilesChecked,
			"mapping_files":   mapping.Summary.FilesChecked,
			"generated":       mapping.Summary.TargetGenerated,
		}).Info("localize.command.verify.completed")

		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[VerifyCommand]{
		commands.WithLogger[VerifyCommand](baseLogger),
		commands.WithOperation[VerifyCommand](verifyOperation),
		commands.WithTimeout[VerifyCommand](0),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VerifyHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *VerifyHandler) Execute(ctx context.Context, msg VerifyCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RewritePathsHandler rewrites locale identifiers across a directory in place.
type RewritePathsHandler struct {
	inner *commands.Handler[RewritePathsCommand]
}

// NewRewritePathsHandler creates the in-place rewrite handler.
func NewRewritePathsHandler(logger interfaces.Logger, opts ...commands.HandlerOption[RewritePathsCommand]) *RewritePathsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RewritePathsCommand) error {
		from := assets.Locale(strings.TrimSpace(msg.From))
		if from == "" {
			from = assets.LocaleKorean
		}
		to := assets.Locale(strings.TrimSpace(msg.To))
		if to == "" {
			to = assets.LocaleSimpChinese
		}

		names, err := assets.ListJSONFiles(msg.Directory)
		if err != nil {
			return err
		}

		var errs []error
		rewritten := 0
		changed := 0
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				break
			}
			path := filepath.Join(msg.Directory, name)
			doc, err := assets.Load(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			count := merge.RewriteLocaleTokens(doc, from, to)
			if count == 0 {
				continue
			}
			if err := assets.Save(path, doc, false); err != nil {
				errs = append(errs, err)
				continue
			}
			rewritten += count
			changed++
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":     msg.Directory,
			"files_changed": changed,
			"tokens":        rewritten,
		}).Info("localize.command.rewrite_paths.completed")

		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[RewritePathsCommand]{
		commands.WithLogger[RewritePathsCommand](baseLogger),
		commands.WithOperation[RewritePathsCommand](rewritePathsOperation),
		commands.WithMessageFields(func(msg RewritePathsCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RewritePathsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *RewritePathsHandler) Execute(ctx context.Context, msg RewritePathsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// FormatHandler pretty-prints every JSON document under a directory.
type FormatHandler struct {
	inner *commands.Handler[FormatCommand]
}

// NewFormatHandler creates the reformat handler.
func NewFormatHandler(logger interfaces.Logger, opts ...commands.HandlerOption[FormatCommand]) *FormatHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg FormatCommand) error {
		names, err := assets.ListJSONFiles(msg.Directory)
		if err != nil {
			return err
		}

		var errs []error
		formatted := 0
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				break
			}
			if err := assets.Format(filepath.Join(msg.Directory, name)); err != nil {
				errs = append(errs, err)
				continue
			}
			formatted++
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory": msg.Directory,
			"files":     formatted,
		}).Info("localize.command.format.completed")

		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[FormatCommand]{
		commands.WithLogger[FormatCommand](baseLogger),
		commands.WithOperation[FormatCommand](formatOperation),
		commands.WithMessageFields(func(msg FormatCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &FormatHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *FormatHandler) Execute(ctx context.Context, msg FormatCommand) error {
	return h.inner.Execute(ctx, msg)
}
