package utils

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernameRegex matches an already-normalized username: lowercase letters,
// digits and underscores only.
var usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// The custom validators hook into gin's binding engine so request structs
// can use `binding:"username"` and `binding:"password"` tags. The username
// validator normalizes first; binding accepts what NormalizeUsername can
// repair.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(NormalizeUsername(fl.Field().String()))
	})

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
}

// NormalizeUsername trims and lower-cases a username. Matching on accounts
// is always done against the normalized form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// IsValidUsername reports whether the normalized username matches the
// username policy.
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(NormalizeUsername(username))
}

// IsValidPassword enforces the password policy: at least 8 characters with
// one uppercase, one lowercase, and one digit, and no whitespace.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
