// Package errors provides structured errors for configuration and CLI
// failures: a stable code, a category, and an actionable suggestion.
// The store packages keep using plain sentinel errors; this package is
// for surfaces that talk to a human.
package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryStorage Category = "storage"
	CategoryCLI     Category = "cli"
)

// ShopkitError is a structured error with a stable code and a fix
// suggestion.
type ShopkitError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (config, storage, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ShopkitError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ShopkitError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ShopkitError) WithSuggestion(s string) *ShopkitError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ShopkitError) WithDetail(d string) *ShopkitError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ShopkitError) Wrap(err error) *ShopkitError {
	e.Wrapped = err
	return e
}

// template holds registered metadata for an error code.
type template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]template{
	"E001": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create a shopkit.json in the project directory or pass an explicit path.",
	},
	"E002": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check the JSON syntax of shopkit.json.",
	},
	"E003": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration value",
		Suggestion: "Check the field named in the detail for an out-of-range value.",
	},
	"E101": {
		Category:   CategoryStorage,
		Message:    "Session storage unavailable",
		Suggestion: "Check that the storage path is writable, or fall back to in-memory storage.",
	},
	"E201": {
		Category:   CategoryCLI,
		Message:    "Unknown command",
		Suggestion: "Run 'shopkit --help' for the list of commands.",
	},
}

// New creates a ShopkitError from a registered error code.
func New(code string) *ShopkitError {
	t, ok := registry[code]
	if !ok {
		return &ShopkitError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ShopkitError{
		Code:       code,
		Category:   t.Category,
		Message:    t.Message,
		Suggestion: t.Suggestion,
	}
}

// Newf creates a new ShopkitError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ShopkitError {
	return &ShopkitError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ShopkitError.
func FromError(err error, code string) *ShopkitError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*ShopkitError); ok {
		return se
	}
	return New(code).Wrap(err)
}
