package recommendation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"marketReco/domain"
)

// ErrInvalidInput marks a caller contract violation such as a negative
// price or a rating outside 1–5. It is never returned for missing data.
var ErrInvalidInput = errors.New("invalid recommendation input")

var validate = validator.New()

func validateCatalog(catalog []domain.Candidate) error {
	for i, item := range catalog {
		if err := validate.Struct(item); err != nil {
			return fmt.Errorf("%w: candidate %d (%s): %v", ErrInvalidInput, i, item.ID, err)
		}
	}
	return nil
}

func validateUserContext(uc domain.UserContext) error {
	if err := validate.Struct(uc); err != nil {
		return fmt.Errorf("%w: user context: %v", ErrInvalidInput, err)
	}
	return nil
}
