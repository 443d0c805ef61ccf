// internal/matching/errors.go
package matching

import "errors"

// ErrInvalidInput is returned when a profile or opportunity is nil where one
// is required.
var ErrInvalidInput = errors.New("INVALID_INPUT")
