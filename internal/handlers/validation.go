package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"storefront/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator validates request DTOs and reports failures keyed by json
// field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom tags registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nationalnumber", func(fl validator.FieldLevel) bool {
		return isNationalNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			return hasMaxDecimals(fl.Field().Float(), priceDecimalPlaces)
		}
		return false
	})
	return &Validator{validate: v}
}

func isNationalNumber(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// priceDecimalPlaces matches the decimal(6,2) price column.
const priceDecimalPlaces = 2

// hasMaxDecimals reports whether the shortest decimal form of f has at
// most places fractional digits.
func hasMaxDecimals(f float64, places int) bool {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	return dot < 0 || len(s)-dot-1 <= places
}

// Struct validates s and returns an apperrors Validation error on failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return apperrors.NewValidation(fields)
}

// Parse decodes the JSON body into dst and validates it.
func (v *Validator) Parse(c *fiber.Ctx, dst any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(dst); err != nil {
			return apperrors.Wrap(apperrors.Validation, "Invalid request body", err)
		}
	}
	return v.Struct(dst)
}

func fieldMessage(fe validator.FieldError) string {
	param := fe.Param()
	stringish := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if stringish {
			return fmt.Sprintf("Ensure this field has at least %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)
	case "max":
		if stringish {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", param)
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", param)
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)
	case "lt":
		return fmt.Sprintf("Ensure this value is less than %s.", param)
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "nationalnumber":
		return "National number must be exactly 10 digits."
	case "price":
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", priceDecimalPlaces)
	case "dive", "gtfield":
		return "Invalid value."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
