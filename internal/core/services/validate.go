package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// requestValidate checks the validate tags on request types.
// validator.Validate caches struct metadata and is safe for concurrent use.
var requestValidate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest validates a request struct, reporting the first failing
// field wrapped in domain.ErrInvalidInput.
func validateRequest(req any) error {
	err := requestValidate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
