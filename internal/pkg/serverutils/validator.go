package serverutils

import (
	"errors"
	"fmt"

	"notevault-be/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and folds the first failure into
// the ErrValidation taxonomy so the boundary error handler returns a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field '%s' failed on the '%s' rule", apperrors.ErrValidation, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
