package validator

import (
	"errors"
	"fmt"

	"rentpilot/pkg/model"

	"github.com/go-playground/validator/v10"
)

// MaxNightlyPrice guards against unit mistakes such as prices sent in cents.
const MaxNightlyPrice = 1_000_000

type ApplyValidator struct {
	validate *validator.Validate
}

func NewApplyValidator() *ApplyValidator {
	return &ApplyValidator{validate: validator.New()}
}

func (v *ApplyValidator) Validate(req *model.ApplyPriceRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fe := validationErrs[0]
			return fmt.Errorf("%s failed %q validation", fe.Field(), fe.Tag())
		}
		return err
	}

	if *req.Price > MaxNightlyPrice {
		return fmt.Errorf("price %d exceeds maximum %d", *req.Price, MaxNightlyPrice)
	}

	return nil
}
