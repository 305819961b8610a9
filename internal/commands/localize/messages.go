// Package localizecmd exposes the locale-generation operations as
// go-command messages so hosts can dispatch them alongside their own
// command buses.
package localizecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	generateMessageType     = "localegen.generate"
	verifyMessageType       = "localegen.verify"
	rewritePathsMessageType = "localegen.rewrite_paths"
	formatMessageType       = "localegen.format"
)

// GenerateCommand runs the generation pipeline over the configured export
// trees.
type GenerateCommand struct {
	// Sets restricts the run to the named build sets; empty means all.
	Sets []string `json:"sets,omitempty"`
	// DryRun collects diagnostics without writing any output.
	DryRun bool `json:"dry_run,omitempty"`
	// Force ignores the incremental manifest and rebuilds every file.
	Force bool `json:"force,omitempty"`
	// Notes travel into the run summary, typically from a runbook body.
	Notes string `json:"notes,omitempty"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate rejects unknown set names before the handler executes.
func (cmd GenerateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Sets, validation.Each(validation.By(func(value any) error {
			name, _ := value.(string)
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "common", "movie", "korean":
				return nil
			default:
				return validation.NewError("localegen.generate.unknown_set", "unknown build set")
			}
		}))),
	)
}

// VerifyCommand runs the structure and mapping checks and writes their
// report artifacts.
type VerifyCommand struct {
	// SkipReports prints findings without persisting report files.
	SkipReports bool `json:"skip_reports,omitempty"`
}

// Type implements command.Message.
func (VerifyCommand) Type() string { return verifyMessageType }

// Validate implements command.Message.
func (VerifyCommand) Validate() error { return nil }

// RewritePathsCommand rewrites stale locale identifiers (asset names, bundle
// names, container paths) inside every JSON document under Directory.
type RewritePathsCommand struct {
	// Directory selects the tree whose documents are rewritten in place.
	Directory string `json:"directory"`
	// From is the locale whose identifiers are replaced; defaults to korean.
	From string `json:"from,omitempty"`
	// To is the replacement locale; defaults to si.
	To string `json:"to,omitempty"`
}

// Type implements command.Message.
func (RewritePathsCommand) Type() string { return rewritePathsMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd RewritePathsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("localegen.rewrite_paths.directory_required", "directory is required"))),
	)
}

// FormatCommand pretty-prints every JSON document under Directory in place.
type FormatCommand struct {
	// Directory selects the tree whose documents are reformatted.
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (FormatCommand) Type() string { return formatMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd FormatCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank("localegen.format.directory_required", "directory is required"))),
	)
}

func requireNonBlank(code, message string) func(any) error {
	return func(value any) error {
		if text, _ := value.(string); strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
