// Package pipeline orchestrates locale generation: merging translation text
// into template documents set by set, rewriting movie bundle indexes,
// verification, and report artifacts.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-localegen/internal/assets"
	"github.com/goliatone/go-localegen/internal/coveragestore"
	"github.com/goliatone/go-localegen/internal/identity"
	"github.com/goliatone/go-localegen/internal/logging"
	"github.com/goliatone/go-localegen/internal/merge"
	"github.com/goliatone/go-localegen/internal/report"
	"github.com/goliatone/go-localegen/internal/validation"
	"github.com/goliatone/go-localegen/internal/verify"
	"github.com/goliatone/go-localegen/pkg/interfaces"
)

// Build set names.
const (
	SetCommon = "common"
	SetMovie  = "movie"
	SetKorean = "korean"
)

// ErrUnknownSet indicates BuildOptions named a set the pipeline does not know.
var ErrUnknownSet = errors.New("pipeline: unknown build set")

// Service generates the target locale tree from template and source exports.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// Config captures runtime behaviour for the pipeline.
type Config struct {
	TargetLocale   assets.Locale
	TemplateLocale assets.Locale
	SourceLocale   assets.Locale
	KoreanLocale   assets.Locale

	CommonExportDir string
	CommonOutputDir string
	KoreanExportDir string
	TradExportDir   string
	TargetOutputDir string

	LogoDiaSourceDir string
	LogoDiaOutputDir string
	TextDiaSourceDir string
	TextDiaOutputDir string

	ReportsDir string

	Workers     int
	Incremental bool
	Verify      bool
	Reports     bool
	Validate    bool
}

// Dependencies lists the collaborators the pipeline drives.
type Dependencies struct {
	Checker   *verify.Checker
	Reports   *report.Writer
	Coverage  coveragestore.Repository
	Validator *validation.DocumentValidator
	Logger    interfaces.Logger
}

// BuildOptions narrows the scope of a run.
type BuildOptions struct {
	Sets   []string
	DryRun bool
	Force  bool
	Notes  string
}

// Diagnostic reports a per-file condition that did not abort the run.
type Diagnostic struct {
	Set     string
	File    string
	Message string
	Err     error
}

// BuildResult reports aggregated run metadata.
type BuildResult struct {
	RunID         uuid.UUID
	Label         string
	FilesBuilt    int
	FilesSkipped  int
	FilesFallback int
	WordsTotal    int
	WordsCopied   int
	WordsFallback int
	Sets          []report.SetCoverage
	Structure     *verify.StructureCheck
	Mapping       *verify.MappingCheck
	Diagnostics   []Diagnostic
	Duration      time.Duration
	Errors        []error
	DryRun        bool
}

// NewService wires a pipeline implementation with the provided configuration
// and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

// mergeJob is one template file to generate output for.
type mergeJob struct {
	set          string
	fileName     string
	templatePath string
	sourcePath   string
	outputPath   string
}

// mergeOutcome is the result of one processed job.
type mergeOutcome struct {
	set        string
	file       string
	skipped    bool
	coverage   merge.FileCoverage
	manifest   *manifestFile
	diagnostic *Diagnostic
	err        error
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sets, err := resolveSets(opts.Sets)
	if err != nil {
		return nil, err
	}

	start := s.now()
	result := &BuildResult{
		RunID:  identity.RunUUID(s.cfg.TargetLocale.String(), sets),
		Label:  report.RunLabel(s.cfg.TargetLocale.String(), start),
		DryRun: opts.DryRun,
	}

	s.logger.Info("pipeline.build.start",
		"run_id", result.RunID.String(),
		"sets", strings.Join(sets, ","),
		"dry_run", opts.DryRun,
		"force", opts.Force,
	)

	var errs []error

	manifest := newBuildManifest()
	if s.cfg.Incremental {
		loaded, err := loadManifest(s.manifestPath())
		if err != nil {
			errs = append(errs, err)
		} else {
			manifest = loaded
		}
	}
	useManifest := s.cfg.Incremental && !opts.Force

	writer := newArtifactWriter(opts.DryRun)
	perSet := map[string]*report.SetCoverage{}

	// Manifest entries are applied after the workers drain; during
	// processing the loaded manifest is read-only.
	var pendingEntries []manifestFile

	var mu sync.Mutex
	collect := func(outcome mergeOutcome) {
		mu.Lock()
		defer mu.Unlock()

		cov := perSet[outcome.set]
		if cov == nil {
			cov = &report.SetCoverage{Set: outcome.set}
			perSet[outcome.set] = cov
		}
		if outcome.diagnostic != nil {
			result.Diagnostics = append(result.Diagnostics, *outcome.diagnostic)
		}
		if outcome.err != nil {
			errs = append(errs, outcome.err)
			return
		}
		if outcome.skipped {
			result.FilesSkipped++
			return
		}
		result.FilesBuilt++
		cov.Files++
		if outcome.coverage.SourceMissing {
			result.FilesFallback++
			cov.FilesFallback++
		}
		cov.WordsTotal += outcome.coverage.WordsTotal
		cov.WordsCopied += outcome.coverage.WordsCopied
		cov.WordsFallback += outcome.coverage.WordsFallback
		if outcome.manifest != nil {
			pendingEntries = append(pendingEntries, *outcome.manifest)
		}
	}

	for _, set := range sets {
		for _, dir := range s.setOutputDirs(set) {
			if err := writer.EnsureDir(ctx, dir); err != nil {
				errs = append(errs, err)
			}
		}
		switch set {
		case SetCommon, SetKorean:
			jobs, err := s.collectJobs(set)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if err := s.processJobs(ctx, jobs, manifest, useManifest, opts.Force, writer, collect); err != nil {
				errs = append(errs, err)
			}
		case SetMovie:
			for _, outcome := range s.buildMovieBundles(ctx, writer) {
				collect(outcome)
			}
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
	}

	for _, cov := range perSet {
		result.Sets = append(result.Sets, *cov)
		result.WordsTotal += cov.WordsTotal
		result.WordsCopied += cov.WordsCopied
		result.WordsFallback += cov.WordsFallback
	}
	sort.Slice(result.Sets, func(i, j int) bool { return result.Sets[i].Set < result.Sets[j].Set })

	if s.cfg.Verify && !opts.DryRun && s.deps.Checker != nil && ctx.Err() == nil {
		if err := s.runChecks(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}

	finished := s.now()
	result.Duration = finished.Sub(start)

	if s.cfg.Reports && !opts.DryRun && s.deps.Reports != nil && ctx.Err() == nil {
		if err := s.writeReports(result, opts, start, finished); err != nil {
			errs = append(errs, err)
		}
	}

	if s.deps.Coverage != nil && !opts.DryRun && ctx.Err() == nil {
		if err := s.recordRun(ctx, result, start, finished); err != nil {
			errs = append(errs, err)
		}
	}

	if s.cfg.Incremental && !opts.DryRun && len(errs) == 0 {
		for _, entry := range pendingEntries {
			manifest.setFile(entry)
		}
		manifest.GeneratedAt = finished.UTC()
		if err := s.persistManifest(ctx, writer, manifest); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info("pipeline.build.done",
		"run_id", result.RunID.String(),
		"built", result.FilesBuilt,
		"skipped", result.FilesSkipped,
		"fallback", result.FilesFallback,
		"errors", len(errs),
		"duration", result.Duration.String(),
	)

	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		return result, errors.Join(errs...)
	}
	return result, nil
}

func resolveSets(requested []string) ([]string, error) {
	all := []string{SetCommon, SetMovie, SetKorean}
	if len(requested) == 0 {
		return all, nil
	}
	known := map[string]bool{SetCommon: true, SetMovie: true, SetKorean: true}
	picked := map[string]bool{}
	for _, set := range requested {
		name := strings.ToLower(strings.TrimSpace(set))
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSet, name)
		}
		picked[name] = true
	}
	resolved := make([]string, 0, len(picked))
	for _, set := range all {
		if picked[set] {
			resolved = append(resolved, set)
		}
	}
	return resolved, nil
}

// setOutputDirs lists the destination directories a set writes into. They
// are created up front so a set with no templates still leaves its output
// tree behind.
func (s *service) setOutputDirs(set string) []string {
	switch set {
	case SetCommon:
		return []string{s.cfg.CommonOutputDir}
	case SetKorean:
		return []string{s.cfg.TargetOutputDir}
	case SetMovie:
		return []string{s.cfg.LogoDiaOutputDir, s.cfg.TextDiaOutputDir}
	}
	return nil
}

// collectJobs enumerates template files for a merge set. The common set
// templates and translation sources live in the same export directory; the
// korean set reads sources from the separate trad export tree.
func (s *service) collectJobs(set string) ([]mergeJob, error) {
	var templateDir, sourceDir, outputDir string
	var templateLocale assets.Locale

	switch set {
	case SetCommon:
		templateDir = s.cfg.CommonExportDir
		sourceDir = s.cfg.CommonExportDir
		outputDir = s.cfg.CommonOutputDir
		templateLocale = s.cfg.TemplateLocale
	case SetKorean:
		templateDir = s.cfg.KoreanExportDir
		sourceDir = s.cfg.TradExportDir
		outputDir = s.cfg.TargetOutputDir
		templateLocale = s.cfg.KoreanLocale
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSet, set)
	}

	names, err := assets.ListLocaleFiles(templateDir, templateLocale)
	if err != nil {
		return nil, err
	}

	jobs := make([]mergeJob, 0, len(names))
	for _, name := range names {
		suffix, ok := templateLocale.Suffix(name)
		if !ok {
			continue
		}
		jobs = append(jobs, mergeJob{
			set:          set,
			fileName:     name,
			templatePath: filepath.Join(templateDir, name),
			sourcePath:   assets.SiblingPath(sourceDir, s.cfg.SourceLocale, suffix),
			outputPath:   assets.SiblingPath(outputDir, s.cfg.TargetLocale, suffix),
		})
	}
	return jobs, nil
}

func (s *service) processJobs(
	ctx context.Context,
	jobs []mergeJob,
	manifest *buildManifest,
	useManifest bool,
	force bool,
	writer artifactWriter,
	collect func(mergeOutcome),
) error {
	if len(jobs) == 0 {
		return nil
	}

	workers := s.effectiveWorkerCount(len(jobs))
	if workers <= 1 {
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				collect(s.processJob(ctx, job, manifest, useManifest, force, writer))
			}
		}
		return nil
	}

	queue := make(chan mergeJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				select {
				case <-ctx.Done():
					return
				default:
					collect(s.processJob(ctx, job, manifest, useManifest, force, writer))
				}
			}
		}()
	}

	var err error
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case queue <- job:
			continue
		}
		break
	}
	close(queue)
	wg.Wait()
	return err
}

func (s *service) processJob(
	ctx context.Context,
	job mergeJob,
	manifest *buildManifest,
	useManifest bool,
	force bool,
	writer artifactWriter,
) mergeOutcome {
	outcome := mergeOutcome{set: job.set, file: job.fileName}

	templateBytes, err := os.ReadFile(job.templatePath)
	if err != nil {
		outcome.err = fmt.Errorf("pipeline: read template %q: %w", job.templatePath, err)
		return outcome
	}
	template, err := assets.Decode(bytes.NewReader(templateBytes))
	if err != nil {
		outcome.diagnostic = &Diagnostic{
			Set:     job.set,
			File:    job.fileName,
			Message: "template unreadable, file skipped",
			Err:     err,
		}
		outcome.skipped = true
		return outcome
	}

	if s.cfg.Validate && s.deps.Validator != nil {
		if err := s.deps.Validator.Validate(job.templatePath, template); err != nil {
			outcome.diagnostic = &Diagnostic{
				Set:     job.set,
				File:    job.fileName,
				Message: "template failed schema validation",
				Err:     err,
			}
		}
	}

	var source *assets.Document
	var sourceBytes []byte
	if assets.Exists(job.sourcePath) {
		sourceBytes, err = os.ReadFile(job.sourcePath)
		if err == nil {
			source, err = assets.Decode(bytes.NewReader(sourceBytes))
		}
		if err != nil {
			// Unreadable source degrades to template fallback, same as a
			// missing file.
			outcome.diagnostic = &Diagnostic{
				Set:     job.set,
				File:    job.fileName,
				Message: "translation source unreadable, falling back to template text",
				Err:     err,
			}
			source = nil
			sourceBytes = nil
		}
	}

	inputHash := computeHash(templateBytes, sourceBytes)
	if useManifest && !force && manifest.upToDate(job.outputPath, inputHash) && assets.Exists(job.outputPath) {
		outcome.skipped = true
		return outcome
	}

	merged, coverage, err := merge.ApplyTranslations(template, source, s.cfg.TemplateLocaleFor(job.set), s.cfg.TargetLocale)
	if err != nil {
		outcome.err = fmt.Errorf("pipeline: merge %q: %w", job.fileName, err)
		return outcome
	}
	outcome.coverage = coverage

	data, err := merged.Encode(false)
	if err != nil {
		outcome.err = fmt.Errorf("pipeline: encode %q: %w", job.outputPath, err)
		return outcome
	}
	if err := writer.WriteFile(ctx, job.outputPath, data); err != nil {
		outcome.err = err
		return outcome
	}

	outcome.manifest = &manifestFile{
		Set:         job.set,
		Output:      job.outputPath,
		Template:    job.templatePath,
		Source:      job.sourcePath,
		InputHash:   inputHash,
		GeneratedAt: s.now().UTC(),
	}

	logging.WithAssetContext(s.logger, job.outputPath, s.cfg.TargetLocale.String(), job.set).Debug(
		"pipeline.file.generated",
		"words_copied", coverage.WordsCopied,
		"words_fallback", coverage.WordsFallback,
	)
	return outcome
}

// TemplateLocaleFor returns the locale whose prefix the set's templates
// carry on m_Name.
func (c Config) TemplateLocaleFor(set string) assets.Locale {
	if set == SetKorean {
		return c.KoreanLocale
	}
	return c.TemplateLocale
}

// movieBundle describes one movie index document to clone and rewrite.
type movieBundle struct {
	file       string
	sourcePath string
	outputPath string
	spec       merge.BundleSpec
}

// buildMovieBundles clones the Korean movie index documents and rewrites
// their identifiers to the target locale variant.
func (s *service) buildMovieBundles(ctx context.Context, writer artifactWriter) []mergeOutcome {
	target := s.cfg.TargetLocale.String()
	bundles := []movieBundle{
		{
			file:       fmt.Sprintf("logo_dia_%s.json", target),
			sourcePath: filepath.Join(s.cfg.LogoDiaSourceDir, "logo_dia_ko.json"),
			outputPath: filepath.Join(s.cfg.LogoDiaOutputDir, fmt.Sprintf("logo_dia_%s.json", target)),
			spec: merge.BundleSpec{
				Name:          fmt.Sprintf("movie/dia/logo/logo_dia_%s", target),
				ContainerPath: fmt.Sprintf("assets/movie/dia/logo/logo_dia_%s.png", target),
			},
		},
		{
			file:       fmt.Sprintf("text_dia_%s_op_pushbutton.json", target),
			sourcePath: filepath.Join(s.cfg.TextDiaSourceDir, "text_dia_ko_op_pushbutton.json"),
			outputPath: filepath.Join(s.cfg.TextDiaOutputDir, fmt.Sprintf("text_dia_%s_op_pushbutton.json", target)),
			spec: merge.BundleSpec{
				Name:          fmt.Sprintf("movie/dia/text/text_dia_%s_op_pushbutton", target),
				ContainerPath: fmt.Sprintf("assets/movie/dia/text/text_dia_%s_op_pushbutton.png", target),
			},
		},
	}

	outcomes := make([]mergeOutcome, 0, len(bundles))
	for _, bundle := range bundles {
		outcomes = append(outcomes, s.buildMovieBundle(ctx, writer, bundle))
	}
	return outcomes
}

func (s *service) buildMovieBundle(ctx context.Context, writer artifactWriter, bundle movieBundle) mergeOutcome {
	outcome := mergeOutcome{set: SetMovie, file: bundle.file}

	if !assets.Exists(bundle.sourcePath) {
		outcome.diagnostic = &Diagnostic{
			Set:     SetMovie,
			File:    bundle.file,
			Message: fmt.Sprintf("bundle source %q missing, bundle skipped", bundle.sourcePath),
		}
		outcome.skipped = true
		return outcome
	}

	source, err := assets.Load(bundle.sourcePath)
	if err != nil {
		outcome.err = err
		return outcome
	}
	rewritten, err := merge.RewriteBundle(source, bundle.spec)
	if err != nil {
		outcome.err = err
		return outcome
	}
	data, err := rewritten.Encode(false)
	if err != nil {
		outcome.err = err
		return outcome
	}
	if err := writer.WriteFile(ctx, bundle.outputPath, data); err != nil {
		outcome.err = err
		return outcome
	}
	return outcome
}

func (s *service) runChecks(ctx context.Context, result *BuildResult) error {
	var errs []error

	structure, err := s.deps.Checker.CheckStructure(ctx,
		s.cfg.CommonExportDir, s.cfg.CommonOutputDir,
		s.cfg.TemplateLocale, s.cfg.TargetLocale)
	if err != nil {
		errs = append(errs, err)
	}
	result.Structure = &structure

	mapping, err := s.deps.Checker.CheckMapping(ctx,
		s.cfg.KoreanExportDir, s.cfg.TargetOutputDir, s.cfg.TradExportDir,
		s.cfg.KoreanLocale, s.cfg.TargetLocale, s.cfg.SourceLocale)
	if err != nil {
		errs = append(errs, err)
	}
	result.Mapping = &mapping

	return errors.Join(errs...)
}

func (s *service) writeReports(result *BuildResult, opts BuildOptions, start, finished time.Time) error {
	var errs []error

	if result.Structure != nil {
		if err := s.deps.Reports.WriteStructureCheck(*result.Structure); err != nil {
			errs = append(errs, err)
		}
	}
	if result.Mapping != nil {
		if err := s.deps.Reports.WriteMappingCheck(*result.Mapping); err != nil {
			errs = append(errs, err)
		}
	}

	summary := report.RunSummary{
		RunID:      result.RunID,
		Label:      result.Label,
		Locale:     s.cfg.TargetLocale.String(),
		StartedAt:  start.UTC(),
		FinishedAt: finished.UTC(),
		DryRun:     opts.DryRun,
		Notes:      opts.Notes,
		Sets:       result.Sets,
	}
	if err := s.deps.Reports.WriteRunSummary(summary); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (s *service) recordRun(ctx context.Context, result *BuildResult, start, finished time.Time) error {
	record := coveragestore.Record{
		ID:            result.RunID,
		Label:         result.Label,
		Locale:        s.cfg.TargetLocale.String(),
		Files:         result.FilesBuilt,
		FilesFallback: result.FilesFallback,
		WordsTotal:    result.WordsTotal,
		WordsCopied:   result.WordsCopied,
		WordsFallback: result.WordsFallback,
		StartedAt:     start.UTC(),
		FinishedAt:    finished.UTC(),
	}
	if result.Structure != nil {
		summary := result.Structure.Summary
		record.StructureClean = summary.AllTopKeysEqual && summary.AllLabelCountEqual &&
			summary.AllLabelNamesEqual && summary.AllWordLengthsEqual
	}
	return s.deps.Coverage.Save(ctx, record)
}

func (s *service) manifestPath() string {
	return filepath.Join(s.cfg.ReportsDir, manifestFileName)
}

func (s *service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return fmt.Errorf("pipeline: marshal manifest: %w", err)
	}
	return writer.WriteFile(ctx, s.manifestPath(), data)
}

func (s *service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		workers = jobCount
	}
	return workers
}
