package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrForbidden - у пользователя нет прав на операцию
	ErrForbidden = errors.New("доступ запрещен")
	// ErrInvalidInput - входные данные не прошли проверку
	ErrInvalidInput = errors.New("некорректные данные")
	// ErrUserNotFound - пользователь не зарегистрирован
	ErrUserNotFound = errors.New("пользователь не найден")
)

var validate = validator.New()

// validateStruct проверяет структуру и сводит ошибки полей в одну ErrInvalidInput
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, fieldMessage(fieldErr))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s: обязательное поле", fieldErr.Field())
	case "datetime":
		return fmt.Sprintf("%s: ожидается формат %s", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s: допустимые значения %s", fieldErr.Field(), fieldErr.Param())
	case "numeric":
		return fmt.Sprintf("%s: ожидается число", fieldErr.Field())
	default:
		return fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag())
	}
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
