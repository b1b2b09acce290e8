package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func alwaysOK(validator.FieldLevel) bool { return true }

func TestMustRegisterValidation(t *testing.T) {
	v := validator.New()
	MustRegisterValidation(v, map[string]validator.Func{"always_ok": alwaysOK})

	type form struct {
		Name string `validate:"always_ok"`
	}
	assert.NoError(t, v.Struct(form{}))
}

func TestMustRegisterValidationPanicsOnBadTag(t *testing.T) {
	assert.Panics(t, func() {
		MustRegisterValidation(validator.New(), map[string]validator.Func{"": alwaysOK})
	})
}
