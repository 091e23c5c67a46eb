package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Messages surfaced to the user, one per failing rule.
const (
	MsgNameRequired     = "Name is required."
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Invalid email format."
	MsgPhoneRequired    = "Phone number is required."
	MsgPhoneDigits      = "Phone must be 10 to 15 digits."
	MsgPasswordRequired = "Password is required."
	MsgPasswordLength   = "Password must be at least 8 characters."
	MsgPasswordLower    = "Password must contain a lowercase letter."
	MsgPasswordUpper    = "Password must contain an uppercase letter."
	MsgPasswordDigit    = "Password must contain a number."
	MsgPasswordSpecial  = "Password must contain a special character (@$!%*?&)."
)

// PasswordMinLength is the minimum number of characters in a password.
const PasswordMinLength = 8

// PasswordSpecials lists the accepted special characters.
const PasswordSpecials = "@$!%*?&"

// Func validates a single field value.
type Func func(field model.FieldName, value string) string

// whitespaceClass is the set matched by \s in browser regular expressions
// (ECMAScript WhiteSpace and LineTerminator), as an RE2 class body.
const whitespaceClass = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^` + whitespaceClass + `@]+@[^` + whitespaceClass + `@]+\.[^` + whitespaceClass + `@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

	passwordClasses = []struct {
		pattern *regexp.Regexp
		message string
	}{
		{regexp.MustCompile(`[a-z]`), MsgPasswordLower},
		{regexp.MustCompile(`[A-Z]`), MsgPasswordUpper},
		{regexp.MustCompile(`[0-9]`), MsgPasswordDigit},
		{regexp.MustCompile(`[@$!%*?&]`), MsgPasswordSpecial},
	}
)

// Validate returns the message of the first rule value breaks for field, or
// "" when it is valid. Unknown fields always validate.
func Validate(field model.FieldName, value string) string {
	switch field {
	case model.FieldNameName:
		return validateName(value)
	case model.FieldNameEmail:
		return validateEmail(value)
	case model.FieldNamePhone:
		return validatePhone(value)
	case model.FieldNamePassword:
		return validatePassword(value)
	default:
		return ""
	}
}

// ValidateAll evaluates every field of values and returns the failures.
func ValidateAll(values model.Values, fn Func) model.Errors {
	if fn == nil {
		fn = Validate
	}
	errs := make(model.Errors)
	for _, field := range model.Fields() {
		if message := fn(field, values[field]); message != "" {
			errs[field] = message
		}
	}
	return errs
}

func validateName(value string) string {
	if Blank(value) {
		return MsgNameRequired
	}
	return ""
}

func validateEmail(value string) string {
	if value == "" {
		return MsgEmailRequired
	}
	if !emailPattern.MatchString(value) {
		return MsgEmailInvalid
	}
	return ""
}

func validatePhone(value string) string {
	if value == "" {
		return MsgPhoneRequired
	}
	if !phonePattern.MatchString(StripWhitespace(value)) {
		return MsgPhoneDigits
	}
	return ""
}

func validatePassword(value string) string {
	if value == "" {
		return MsgPasswordRequired
	}
	if utf8.RuneCountInString(value) < PasswordMinLength {
		return MsgPasswordLength
	}
	for _, class := range passwordClasses {
		if !class.pattern.MatchString(value) {
			return class.message
		}
	}
	return ""
}

// StripWhitespace removes every whitespace rune from value.
func StripWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if IsWhitespace(r) {
			return -1
		}
		return r
	}, value)
}

// Blank reports whether value is empty after trimming whitespace.
func Blank(value string) bool {
	return strings.TrimFunc(value, IsWhitespace) == ""
}

// IsWhitespace reports whether r is in whitespaceClass.
func IsWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00A0', '\u1680', '\u2028', '\u2029', '\u202F', '\u205F', '\u3000', '\uFEFF':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}
