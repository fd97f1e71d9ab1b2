package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rentpilot/pkg/calendar"
	"rentpilot/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

type SeasonRuleValidator struct {
	validate *validator.Validate
}

func NewSeasonRuleValidator() *SeasonRuleValidator {
	v := validator.New()
	_ = v.RegisterValidation("monthday", validateMonthDay)
	v.RegisterTagNameFunc(jsonFieldName)

	return &SeasonRuleValidator{
		validate: v,
	}
}

func validateMonthDay(fl validator.FieldLevel) bool {
	return calendar.MonthDay(fl.Field().String()).Valid()
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func (v *SeasonRuleValidator) Validate(input *model.SeasonRuleInput) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: messageFor(err),
		})
	}

	return validationErrors
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "monthday":
		return fmt.Sprintf("%q is not a valid MM-DD date", err.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	default:
		return fmt.Sprintf("failed %q validation", err.Tag())
	}
}
