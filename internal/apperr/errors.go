package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrSaveInFlight = errors.New("save already in progress")
	ErrNoEditor     = errors.New("no touchpoint editor session open")
)

// ValidationError reports a missing or malformed user-supplied field.
// It is always user-correctable: the draft stays intact and the caller
// may retry after fixing the field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
