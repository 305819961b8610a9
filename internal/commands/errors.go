package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped errors so callers of the localize surface
// can branch on the failure kind without matching message strings.
const (
	codeInvalidCommand = "LOCALIZE_INVALID_COMMAND"
	codeRunCanceled    = "LOCALIZE_RUN_CANCELED"
	codeRunTimeout     = "LOCALIZE_RUN_TIMEOUT"
	codeRunContext     = "LOCALIZE_RUN_CONTEXT_ERROR"
	codeRunFailed      = "LOCALIZE_RUN_FAILED"
)

func wrapValidationError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, operationMessage(operation, "invalid command")).
		WithTextCode(codeInvalidCommand)
}

func wrapContextError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, operationMessage(operation, "run cancelled")).
			WithTextCode(codeRunCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, operationMessage(operation, "run deadline exceeded")).
			WithTextCode(codeRunTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, operationMessage(operation, "run context error")).
			WithTextCode(codeRunContext)
	}
}

func wrapExecuteError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, operationMessage(operation, "run failed")).
		WithTextCode(codeRunFailed)
}

func operationMessage(operation, detail string) string {
	if operation == "" {
		return "localize: " + detail
	}
	return "localize " + operation + ": " + detail
}
