// Package validation holds the pure request-validation policy applied
// before any mutation: field presence and shape checks, per-operation
// mass-assignment allow-lists and the strong-password rule.
package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/models"
)

var validate = validator.New()

// ValidationError reports a rejected payload. It is always a 400-class,
// user-visible failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Allow-lists are enumerated per mutation endpoint. Profile edits and
// password changes deliberately do not share a list: an unexpected key in
// either payload must fail before any persistence call.
var (
	profileEditAllowed = map[string]bool{
		"firstName":      true,
		"lastName":       true,
		"password":       true,
		"age":            true,
		"gender":         true,
		"profilePicture": true,
		"about":          true,
		"skills":         true,
	}
	passwordChangeAllowed = map[string]bool{
		"currentPassword": true,
		"newPassword":     true,
	}
)

// MaxSkills caps the number of skill entries on a profile
const MaxSkills = 10

// ValidateSignup checks an account creation payload: both names present,
// a syntactically valid email, and a strong password.
func ValidateSignup(req models.SignupRequest) error {
	if req.FirstName == "" || req.LastName == "" {
		return errorf("Name is not valid")
	}
	if n := utf8.RuneCountInString(req.FirstName); n < 3 || n > 50 {
		return errorf("First name must be between 3 and 50 characters")
	}
	if n := utf8.RuneCountInString(req.LastName); n < 3 || n > 50 {
		return errorf("Last name must be between 3 and 50 characters")
	}
	if err := validate.Var(req.Email, "required,email"); err != nil {
		return errorf("Invalid email")
	}
	if !auth.IsStrongPassword(req.Password) {
		return errorf("Password is not strong")
	}
	return nil
}

// ValidateProfileEdit checks a partial profile update. Every key must be a
// member of the edit allow-list, skills stay within MaxSkills, and a
// profile picture, when present, must be a valid URL.
func ValidateProfileEdit(fields map[string]interface{}) error {
	if len(fields) == 0 {
		return errorf("No fields to update")
	}
	for key := range fields {
		if !profileEditAllowed[key] {
			return errorf("Invalid update field: %s", key)
		}
	}
	if skills, ok := fields["skills"]; ok {
		list, ok := skills.([]interface{})
		if !ok {
			return errorf("Skills must be a list")
		}
		if len(list) > MaxSkills {
			return errorf("Skills count cannot be more than %d", MaxSkills)
		}
	}
	if picture, ok := fields["profilePicture"]; ok {
		url, ok := picture.(string)
		if !ok || validate.Var(url, "required,url") != nil {
			return errorf("Profile URL not valid")
		}
	}
	return nil
}

// PasswordChange is the payload for a password-change request
type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}

// ValidatePasswordChange checks a password-change payload. The raw key set
// must be a subset of the password-change allow-list, both passwords must be
// present, and the new password must pass the strong-password policy.
func ValidatePasswordChange(keys map[string]interface{}, change PasswordChange) error {
	for key := range keys {
		if !passwordChangeAllowed[key] {
			return errorf("Invalid update field: %s", key)
		}
	}
	if change.CurrentPassword == "" || change.NewPassword == "" {
		return errorf("Current password and new password are required")
	}
	if !auth.IsStrongPassword(change.NewPassword) {
		return errorf("New password is not strong")
	}
	return nil
}

// ValidateTodo checks a todo creation payload. Lengths are counted in
// runes, not bytes, so multi-byte titles are not over-rejected.
func ValidateTodo(title string) error {
	if utf8.RuneCountInString(title) < 3 {
		return errorf("Title must be at least 3 characters")
	}
	if utf8.RuneCountInString(title) > 100 {
		return errorf("Title should not be greater than 100 chars")
	}
	return nil
}

// ValidateProfileFields checks the typed field values a profile edit may
// carry: name lengths, minimum age, gender enum, about as plain text.
func ValidateProfileFields(fields map[string]interface{}) error {
	if v, ok := fields["firstName"]; ok {
		if err := validateName(v, "First name"); err != nil {
			return err
		}
	}
	if v, ok := fields["lastName"]; ok {
		if err := validateName(v, "Last name"); err != nil {
			return err
		}
	}
	if v, ok := fields["age"]; ok {
		age, ok := v.(float64)
		if !ok || age < 18 {
			return errorf("Age must be at least 18")
		}
	}
	if v, ok := fields["about"]; ok {
		if _, ok := v.(string); !ok {
			return errorf("About must be a string")
		}
	}
	if v, ok := fields["gender"]; ok {
		gender, ok := v.(string)
		if !ok || (gender != "male" && gender != "female" && gender != "other") {
			return errorf("Gender must be male, female or other")
		}
	}
	if v, ok := fields["password"]; ok {
		password, ok := v.(string)
		if !ok || !auth.IsStrongPassword(password) {
			return errorf("Password is not strong")
		}
	}
	return nil
}

func validateName(v interface{}, label string) error {
	name, ok := v.(string)
	if !ok {
		return errorf("%s must be between 3 and 50 characters", label)
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
		return errorf("%s must be between 3 and 50 characters", label)
	}
	return nil
}
