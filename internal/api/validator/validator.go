package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	if err := v.RegisterValidation("user_type", validateUserType); err != nil {
		return nil
	}
	if err := v.RegisterValidation("account_type", validateAccountType); err != nil {
		return nil
	}
	if err := v.RegisterValidation("content_status", validateContentStatus); err != nil {
		return nil
	}
	if err := v.RegisterValidation("article_status", validateArticleStatus); err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateUserType(fl playgroundvalidator.FieldLevel) bool {
	t := fl.Field().String()
	return t == "user" || t == "artisan" || t == "admin"
}

// account_type covers self-registration, which never creates admins.
func validateAccountType(fl playgroundvalidator.FieldLevel) bool {
	t := fl.Field().String()
	return t == "user" || t == "artisan"
}

func validateContentStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "pending" || status == "approved" || status == "rejected"
}

func validateArticleStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "draft" || status == "published"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// Format expands each field error into a human-readable message keyed by
// the JSON field name.
func Format(errors ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "url":
			errMap[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "oneof":
			errMap[field] = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "gt":
			errMap[field] = fmt.Sprintf("%s must be greater than %s", field, param)
		case "lte":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "user_type":
			errMap[field] = fmt.Sprintf("%s must be one of: user, artisan, admin", field)
		case "account_type":
			errMap[field] = fmt.Sprintf("%s must be either 'user' or 'artisan'", field)
		case "content_status":
			errMap[field] = fmt.Sprintf("%s must be one of: pending, approved, rejected", field)
		case "article_status":
			errMap[field] = fmt.Sprintf("%s must be either 'draft' or 'published'", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
