package errors

import "errors"

// LayoutError signals that a scraped document no longer has the shape the
// parser expects. Output built from such a document is not safe to persist.
type LayoutError struct {
	Source string
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Source == "" {
		return e.Reason
	}
	return e.Reason + " (" + e.Source + ")"
}

// NewLayoutError creates a LayoutError for the given source URL.
func NewLayoutError(source, reason string) *LayoutError {
	return &LayoutError{Source: source, Reason: reason}
}

// IsLayoutError reports whether err is a LayoutError (even when wrapped).
func IsLayoutError(err error) bool {
	var layoutErr *LayoutError
	return errors.As(err, &layoutErr)
}
