package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const minPracticingYear = 1950

// RegisterCustomRules installs domain validation rules on gin's binding
// engine. Call once at startup before any request is served.
func RegisterCustomRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("notfuture", notFuture); err != nil {
		return err
	}
	return v.RegisterValidation("practicingyear", practicingYear)
}

// notFuture accepts time.Time fields that are not after now.
func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(time.Now())
}

// practicingYear bounds a year between 1950 and the current year inclusive.
func practicingYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= minPracticingYear && year <= time.Now().Year()
}
