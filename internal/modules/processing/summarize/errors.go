package summarize

import "errors"

// Error taxonomy for the generation pipeline. Everything is caught at the
// pipeline boundary and converted to a boolean plus a log line; nothing here
// escapes to publication-facing callers.
var (
	// ErrDocumentNotFound means the referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrGenerationFailed collapses every provider failure mode: transport
	// error, timeout, non-200 status, missing response field. One attempt,
	// no retry.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrValidation means a structured provider response was malformed.
	ErrValidation = errors.New("invalid summary payload")

	// ErrConfiguration means the provider setup is unusable (missing API
	// key, unknown provider). A caller-side error, never attempted.
	ErrConfiguration = errors.New("provider configuration error")
)
