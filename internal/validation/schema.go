// Package validation checks exported message documents against a JSON Schema
// before they enter the merge pipeline. The schema is deliberately loose:
// unknown structural fields are allowed because structure preservation is the
// merge engine's job, not the schema's.
package validation

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-localegen/internal/assets"
)

// ErrDocumentInvalid is the sentinel wrapped by every validation failure.
var ErrDocumentInvalid = errors.New("validation: message document invalid")

const messageDocumentSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "MessageDocument",
  "type": "object",
  "required": ["m_Name"],
  "properties": {
    "m_Name": {
      "type": "string",
      "minLength": 1
    },
    "labelDataArray": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "labelName": {
            "type": "string"
          },
          "wordDataArray": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "str": {
                  "type": "string"
                }
              },
              "additionalProperties": true
            }
          }
        },
        "additionalProperties": true
      }
    }
  },
  "additionalProperties": true
}
`

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// InvalidDocumentError surfaces validation issues with schema-aware context.
type InvalidDocumentError struct {
	Path   string
	Issues []Issue
}

func (e *InvalidDocumentError) Error() string {
	if len(e.Issues) == 0 {
		return ErrDocumentInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, strings.Join(parts, "; "))
	}
	return strings.Join(parts, "; ")
}

func (e *InvalidDocumentError) Unwrap() error {
	return ErrDocumentInvalid
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var invalidErr *InvalidDocumentError
	if errors.As(err, &invalidErr) && invalidErr != nil {
		return invalidErr.Issues
	}
	return []Issue{{Message: err.Error()}}
}

// DocumentValidator validates message documents against the embedded schema.
type DocumentValidator struct {
	schema *jsonschema.Schema
}

// NewDocumentValidator compiles the embedded message document schema.
func NewDocumentValidator() (*DocumentValidator, error) {
	schema, err := jsonschema.CompileString("localegen://message-document.schema.json", messageDocumentSchema)
	if err != nil {
		return nil, fmt.Errorf("validation: compile message schema: %w", err)
	}
	return &DocumentValidator{schema: schema}, nil
}

// Validate checks the document payload, tagging failures with path for
// per-file diagnostics.
func (v *DocumentValidator) Validate(path string, doc *assets.Document) error {
	if v == nil || v.schema == nil {
		return nil
	}
	if doc == nil {
		return &InvalidDocumentError{Path: path, Issues: []Issue{{Message: "document is nil"}}}
	}

	if err := v.schema.Validate(doc.Raw()); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) && validationErr != nil {
			return &InvalidDocumentError{Path: path, Issues: collectIssues(validationErr)}
		}
		return &InvalidDocumentError{Path: path, Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return []Issue{{
			Location: err.InstanceLocation,
			Message:  err.Message,
		}}
	}
	issues := make([]Issue, 0, len(err.Causes))
	for _, cause := range err.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}
