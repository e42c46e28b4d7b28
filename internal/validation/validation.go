package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation functions
	if err := validate.RegisterValidation("personname", validatePersonName); err != nil {
		panic(fmt.Sprintf("failed to register personname validation: %v", err))
	}
	if err := validate.RegisterValidation("password", validatePassword); err != nil {
		panic(fmt.Sprintf("failed to register password validation: %v", err))
	}
	if err := validate.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
}

// Validate validates a struct using tags
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// ValidatePersonName validates a first or last name separately
func ValidatePersonName(name string) error {
	return validate.Var(name, "required,personname")
}

// ValidatePassword validates a password separately
func ValidatePassword(password string) error {
	return validate.Var(password, "required,password")
}

// Custom validation functions

func validatePersonName(fl validator.FieldLevel) bool {
	name := fl.Field().String()

	// Name requirements:
	// - 1 to 50 characters
	// - Letters, spaces, hyphens and apostrophes only
	// - Must start with a letter
	if n := utf8.RuneCountInString(name); n < 1 || n > 50 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(first) {
		return false
	}

	for _, char := range name {
		if !unicode.IsLetter(char) && char != ' ' && char != '-' && char != '\'' {
			return false
		}
	}

	return true
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	// Password requirements:
	// - Between 8 and 72 bytes (bcrypt input limit)
	// - At least one uppercase letter
	// - At least one lowercase letter
	// - At least one number
	// - At least one special character
	if len(password) < 8 || len(password) > 72 {
		return false
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FormatError formats a validation error into a human-readable message
func FormatError(err error) []ValidationError {
	var validationErrors []ValidationError

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return validationErrors
	}

	for _, e := range errs {
		var message string

		switch e.Tag() {
		case "required", "notblank":
			message = fmt.Sprintf("%s is required", e.Field())
		case "email":
			message = "Invalid email format"
		case "personname":
			message = fmt.Sprintf("%s must be 1-50 letters and may contain spaces, hyphens, or apostrophes", e.Field())
		case "password":
			message = "Password must be 8-72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character"
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		default:
			message = fmt.Sprintf("Invalid value for %s", e.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field: e.Field(),
			Error: message,
		})
	}

	return validationErrors
}

// Message returns the first formatted error, or a generic message
func Message(err error) string {
	if errs := FormatError(err); len(errs) > 0 {
		return errs[0].Error
	}
	return "Invalid request"
}
