package validate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind — ожидаемый тип значения поля.
type Kind int

const (
	// KindString — непустая строка (пробелы не считаются значением).
	KindString Kind = iota

	// KindBool — true/false, либо число 0/1.
	KindBool

	// KindInt — целое число (JSON number или строка из цифр).
	KindInt
)

// Field — описание одного поля схемы.
type Field struct {
	Name string
	Kind Kind

	// Optional — поле может отсутствовать; если присутствует, тип проверяется.
	Optional bool

	// MaxLen — предельная длина строки в символах, 0 без ограничения.
	MaxLen int
}

// Schema — упорядоченный список полей сущности.
type Schema []Field

// Names возвращает имена полей схемы.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Check проверяет payload по схеме.
//
// Поле считается отсутствующим, если ключа нет, значение null
// или пустая строка. false и 0 — полноценные значения.
// Возвращает nil или *ValidationError со всеми нарушениями.
func Check(payload map[string]any, schema Schema) error {
	var verr ValidationError

	for _, f := range schema {
		v, ok := payload[f.Name]
		if !ok || isEmpty(v) {
			if !f.Optional {
				verr.Missing = append(verr.Missing, f.Name)
			}
			continue
		}
		if !hasKind(v, f.Kind) || tooLong(v, f.MaxLen) {
			verr.Invalid = append(verr.Invalid, f.Name)
		}
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return &verr
	}
	return nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func tooLong(v any, maxLen int) bool {
	s, ok := v.(string)
	return ok && maxLen > 0 && utf8.RuneCountInString(strings.TrimSpace(s)) > maxLen
}

func hasKind(v any, kind Kind) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := toBool(v)
		return ok
	case KindInt:
		_, ok := toInt(v)
		return ok
	}
	return false
}

// String возвращает строковое поле без крайних пробелов.
// Вызывать после успешного Check.
func String(payload map[string]any, name string) string {
	s, _ := payload[name].(string)
	return strings.TrimSpace(s)
}

// OptionalString возвращает nil, если поле отсутствует или пустое.
func OptionalString(payload map[string]any, name string) *string {
	v, ok := payload[name]
	if !ok || isEmpty(v) {
		return nil
	}
	s := String(payload, name)
	return &s
}

// Bool возвращает булево поле. Вызывать после успешного Check.
func Bool(payload map[string]any, name string) bool {
	b, _ := toBool(payload[name])
	return b
}

// Int возвращает целочисленное поле. Вызывать после успешного Check.
func Int(payload map[string]any, name string) int64 {
	n, _ := toInt(payload[name])
	return n
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		switch t {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	case json.Number:
		switch t.String() {
		case "0":
			return false, true
		case "1":
			return true, true
		}
	}
	return false, false
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || t >= math.MaxInt64 || t < math.MinInt64 {
			return 0, false
		}
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// OptionalInt возвращает nil, если поле отсутствует или пустое.
func OptionalInt(payload map[string]any, name string) *int64 {
	v, ok := payload[name]
	if !ok || isEmpty(v) {
		return nil
	}
	n := Int(payload, name)
	return &n
}
