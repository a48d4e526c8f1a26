// Package scanerror defines the typed errors surfaced by the scan engine.
package scanerror

import "fmt"

// SourceUnavailableError reports that the message source could not be read,
// typically because the platform denied the permission or the capability
// does not exist. The orchestrator recovers it at the scan boundary.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("message source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that a captured field could not be turned into a
// usable value. Extraction failures are local recoveries: the extractor
// skips to the next rule or message and never aborts a batch.
type ExtractionError struct {
	Field string
	Value string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s from %q: %v", e.Field, e.Value, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
