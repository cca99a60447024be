package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Registration rules mirrored from the dashboard's signup form: codenames
// are uppercase letters and underscores, identities are gmail addresses,
// PINs are exactly six digits.
var (
	usernameRe = regexp.MustCompile(`^[A-Z_]+$`)
	emailRe    = regexp.MustCompile(`^[a-z0-9._%+-]+@gmail\.(com|in)$`)
	pinRe      = regexp.MustCompile(`^\d{6}$`)
)

func ValidUsername(username string) bool { return usernameRe.MatchString(username) }

func ValidEmail(email string) bool { return emailRe.MatchString(email) }

func ValidPin(pin string) bool { return pinRe.MatchString(pin) }

// ParseError flattens gin binding failures into a field -> message map.
func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
	} else if err != nil { // Non-validator errors
		errors["error"] = err.Error()
	}
	return errors
}

// BindingMessage flattens a binding failure into the single caller-facing
// line the error contract expects.
func BindingMessage(err error) string {
	parts := ParseError(err)
	msgs := make([]string, 0, len(parts))
	for _, m := range parts {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return "Invalid input: " + strings.Join(msgs, "; ")
}
