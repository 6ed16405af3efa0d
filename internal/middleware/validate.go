package middleware

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tintuc/newsapi/internal/errs"
)

// Validator wraps a shared validator instance.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates the given struct against its validation tags.
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ParseAndValidate decodes the request body into target and runs the
// struct validation tags over it. Failures surface as validation errors
// naming the offending fields.
func (v *Validator) ParseAndValidate(c *fiber.Ctx, target interface{}) error {
	if err := c.BodyParser(target); err != nil {
		return errs.Validationf("dữ liệu gửi lên không hợp lệ")
	}

	if err := v.Validate(target); err != nil {
		verr, ok := err.(validator.ValidationErrors)
		if !ok {
			return errs.Validationf("dữ liệu không hợp lệ")
		}
		fields := make([]string, 0, len(verr))
		for _, fe := range verr {
			fields = append(fields, fe.Field())
		}
		return errs.Validationf("trường không hợp lệ: %s", strings.Join(fields, ", "))
	}
	return nil
}
