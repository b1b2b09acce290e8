package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MustRegisterValidation registers custom validation tags on v and panics
// if any registration is rejected. Tags are registered at construction, so
// a bad tag fails at startup instead of at the first request.
func MustRegisterValidation(v *validator.Validate, tags map[string]validator.Func) {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
}
