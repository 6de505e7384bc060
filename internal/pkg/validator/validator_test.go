package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type endpoints struct {
	From string `validate:"notblank"`
	To   string `validate:"notblank"`
}

func TestValidate_NotBlank(t *testing.T) {
	assert.NoError(t, Validate(&endpoints{From: "Gare de Lyon", To: "Nation"}))

	err := Validate(&endpoints{From: "   ", To: "Nation"})
	require.Error(t, err)
	assert.Equal(t, []string{"From"}, FailedFields(err))

	err = Validate(&endpoints{})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"From", "To"}, FailedFields(err))
}

func TestFailedFields_ForeignError(t *testing.T) {
	assert.Nil(t, FailedFields(assert.AnError))
}

func TestMustRegister(t *testing.T) {
	assert.NotPanics(t, func() {
		mustRegister(validator.New(), "notblank", notBlank)
	})
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", notBlank)
	})
}
