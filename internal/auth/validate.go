package auth

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// rule is one declarative check against a named field. Rules never mutate
// the payload; they only report violations.
type rule struct {
	field   string
	message string
	check   func(value string) bool
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var signupRules = []rule{
	{
		field:   "username",
		message: "Username must be between 3 and 30 characters",
		check:   func(v string) bool { return len(v) >= 3 && len(v) <= 30 },
	},
	{
		field:   "username",
		message: "Username can only contain letters, numbers, and underscores",
		check:   usernamePattern.MatchString,
	},
	{
		field:   "email",
		message: "Please provide a valid email",
		check:   isValidEmail,
	},
	{
		field:   "password",
		message: "Password must be at least 6 characters long",
		check:   func(v string) bool { return len(v) >= 6 },
	},
	{
		field:   "password",
		message: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
		check:   hasUpperLowerDigit,
	},
}

var loginRules = []rule{
	{
		field:   "email",
		message: "Please provide a valid email",
		check:   isValidEmail,
	},
	{
		field:   "password",
		message: "Password is required",
		check:   func(v string) bool { return v != "" },
	},
}

func ValidateSignup(username, email, password string) []FieldError {
	return runRules(signupRules, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func ValidateLogin(email, password string) []FieldError {
	return runRules(loginRules, map[string]string{
		"email":    email,
		"password": password,
	})
}

func runRules(rules []rule, fields map[string]string) []FieldError {
	var violations []FieldError
	for _, r := range rules {
		if !r.check(fields[r.field]) {
			violations = append(violations, FieldError{Field: r.field, Message: r.message})
		}
	}
	return violations
}

// NormalizeEmail trims and lowercases an address before validation and any
// store lookup, so lookups and the unique index agree on the key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func hasUpperLowerDigit(password string) bool {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
