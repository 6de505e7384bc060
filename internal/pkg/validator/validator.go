package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	mustRegister(validate, "notblank", notBlank)
}

// mustRegister panics on a failed registration; an unregistered tag would
// otherwise panic later, on the first struct that uses it.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
}

// notBlank rejects strings that are empty once surrounding whitespace is trimmed.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FailedFields lists the struct fields that failed validation, or nil if err
// did not come from Validate.
func FailedFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
