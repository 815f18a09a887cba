package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const minPasswordLen = 8

var v = validator.New(validator.WithRequiredStructEnabled())

// IsEmail reports whether s passes a standard email-syntax check.
func IsEmail(s string) bool {
	return v.Var(s, "required,email") == nil
}

// CreateUserErrors checks the create-user input and returns a map of
// field name to message. All failing fields are reported together; an
// empty map means the input is valid.
func CreateUserErrors(fullName, email, password string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(fullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if !IsEmail(email) {
		errs["email"] = "Invalid email format"
	}
	if len(password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters long"
	}
	return errs
}

// EditUserErrors checks the edit-user input. The password is optional on
// edit; the length check applies only when one was supplied.
func EditUserErrors(fullName, password string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(fullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if password != "" && len(password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters long"
	}
	return errs
}
