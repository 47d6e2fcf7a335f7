package enrich

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a major code absent from the catalog index. Terminal:
// no model call is made for unknown codes.
var ErrNotFound = errors.New("major code not found in catalog")

// ValidationError reports a structurally malformed model response. It is
// retried within the generator's attempt budget, never surfaced raw to
// clients.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid model response: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
