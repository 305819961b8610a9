package localegen

import "github.com/goliatone/go-localegen/internal/runtimeconfig"

var (
	ErrTemplateDirRequired        = runtimeconfig.ErrTemplateDirRequired
	ErrCommonOutputDirRequired    = runtimeconfig.ErrCommonOutputDirRequired
	ErrKoreanDirRequired          = runtimeconfig.ErrKoreanDirRequired
	ErrTradDirRequired            = runtimeconfig.ErrTradDirRequired
	ErrTargetOutputDirRequired    = runtimeconfig.ErrTargetOutputDirRequired
	ErrReportsDirRequired         = runtimeconfig.ErrReportsDirRequired
	ErrIncrementalRequiresReports = runtimeconfig.ErrIncrementalRequiresReports
	ErrWorkersInvalid             = runtimeconfig.ErrWorkersInvalid
	ErrCoverageDriverUnknown      = runtimeconfig.ErrCoverageDriverUnknown
	ErrCoverageDSNRequired        = runtimeconfig.ErrCoverageDSNRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	PathConfig     = runtimeconfig.PathConfig
	Features       = runtimeconfig.Features
	CoverageConfig = runtimeconfig.CoverageConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Runbook        = runtimeconfig.Runbook
)

// DefaultConfig returns the layout and behaviour defaults of the pipeline.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadRunbook reads a Markdown runbook and applies its frontmatter overlay
// on top of base.
func LoadRunbook(path string, base Config) (Config, Runbook, error) {
	return runtimeconfig.LoadRunbook(path, base)
}
