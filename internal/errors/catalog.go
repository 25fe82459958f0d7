package errors

import (
	"errors"
	"fmt"
)

// CatalogError represents an episode catalog response that violates the
// expected shape, e.g. a show search result without an identifier.
type CatalogError struct {
	Provider string
	Message  string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s response invalid: %s", e.Provider, e.Message)
}

// NewCatalogError creates a CatalogError for the named provider.
func NewCatalogError(provider, message string) *CatalogError {
	return &CatalogError{Provider: provider, Message: message}
}

// IsCatalogError reports whether err is a CatalogError (even when wrapped).
func IsCatalogError(err error) bool {
	var catalogErr *CatalogError
	return errors.As(err, &catalogErr)
}
