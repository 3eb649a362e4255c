package validate

import (
	"errors"
	"strings"
)

var (
	// ErrMissingFields — в payload отсутствует хотя бы одно обязательное поле.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidFields — значение поля имеет неверный тип.
	ErrInvalidFields = errors.New("invalid field values")
)

// ValidationError — все нарушения схемы, найденные в payload.
// Порядок полей совпадает с порядком в схеме.
type ValidationError struct {
	Missing []string
	Invalid []string
}

// Error реализует интерфейс error.
//
// Формат: "No first_name specified. No last_name specified."
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, name := range e.Missing {
		parts = append(parts, "No "+name+" specified.")
	}
	for _, name := range e.Invalid {
		parts = append(parts, "Invalid "+name+" specified.")
	}
	return strings.Join(parts, " ")
}

// Is позволяет проверять ошибку через errors.Is(err, ErrMissingFields).
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMissingFields:
		return len(e.Missing) > 0
	case ErrInvalidFields:
		return len(e.Invalid) > 0
	}
	return false
}
