// Package validation provides request validation helpers built on the
// jellydator/validation rule set.
package validation

import (
	apperrors "github.com/allisson/onetime/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput so
// handlers map them to 422 responses.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}
