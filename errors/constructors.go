package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *NavError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *NavError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// PresetNotFound creates an unknown preset error
func PresetNotFound(name string, known []string) *NavError {
	return New(ErrCodePresetNotFound, fmt.Sprintf("preset '%s' not found", name)).
		WithDetail("preset", name).
		WithDetail("known", known)
}

// ElementNotFound reports a host document without the element a render step needs.
func ElementNotFound(selector string) *NavError {
	return New(ErrCodeElementNotFound, fmt.Sprintf("missing element: %s", selector)).
		WithDetail("selector", selector)
}

// PageRead creates a page read failure error
func PageRead(path string, err error) *NavError {
	return Wrap(err, ErrCodePageRead, fmt.Sprintf("failed to read page: %s", path)).
		WithDetail("path", path)
}

// PageParse creates a page parse failure error
func PageParse(path string, err error) *NavError {
	return Wrap(err, ErrCodePageParse, fmt.Sprintf("failed to parse page: %s", path)).
		WithDetail("path", path)
}

// PageWrite creates a page write failure error
func PageWrite(path string, err error) *NavError {
	return Wrap(err, ErrCodePageWrite, fmt.Sprintf("failed to write page: %s", path)).
		WithDetail("path", path)
}

// LintWarnings reports a strict check that found issues.
func LintWarnings(count int) *NavError {
	return New(ErrCodeLintWarnings, fmt.Sprintf("%d configuration warning(s)", count)).
		WithDetail("count", count)
}
