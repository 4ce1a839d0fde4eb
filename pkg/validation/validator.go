// Package validation проверка входных DTO через go-playground/validator
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// ErrValidation входные данные не прошли проверку
var ErrValidation = errors.New("validation failed")

// Validator обёртка над *validator.Validate с тегом "date" (YYYY-MM-DD)
type Validator struct {
	v *validator.Validate
}

// New создает валидатор с зарегистрированными пользовательскими тегами
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := types.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate проверяет структуру. Ошибка перечисляет поля и нарушенные правила.
func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
