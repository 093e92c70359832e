// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// slugPattern accepts URL-safe slugs: alphanumeric runs joined by single '-' or '_'.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:[-_][A-Za-z0-9]+)*$`)

// IsSlug reports whether s is a URL-safe slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom tags on Gin's validator engine.
// Only the first call does any work.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		return fmt.Errorf("register slug validator: %w", err)
	}
	return nil
}
