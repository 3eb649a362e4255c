package validate

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestCheck_Valid(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		schema  Schema
	}{
		{
			name:    "candidate with false flag",
			payload: map[string]any{"first_name": "Ada", "last_name": "Lovelace", "industry_connected": false},
			schema:  CandidateCreate,
		},
		{
			name:    "candidate with numeric flag",
			payload: map[string]any{"first_name": "Ada", "last_name": "Lovelace", "industry_connected": float64(1)},
			schema:  CandidateCreate,
		},
		{
			name:    "party id zero is a value",
			payload: map[string]any{"party_id": float64(0)},
			schema:  CandidateUpdate,
		},
		{
			name:    "party id as digit string",
			payload: map[string]any{"party_id": "2"},
			schema:  CandidateUpdate,
		},
		{
			name:    "json.Number",
			payload: map[string]any{"voter_id": json.Number("3"), "candidate_id": json.Number("1")},
			schema:  VoteCreate,
		},
		{
			name:    "extra fields are ignored",
			payload: map[string]any{"name": "Whig", "color": "orange"},
			schema:  PartyCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Check(tt.payload, tt.schema); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestCheck_ReportsExactlyMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		missing []string
	}{
		{
			name:    "empty payload",
			payload: map[string]any{},
			missing: []string{"first_name", "last_name", "industry_connected"},
		},
		{
			name:    "blank string",
			payload: map[string]any{"first_name": "   ", "last_name": "Lovelace", "industry_connected": true},
			missing: []string{"first_name"},
		},
		{
			name:    "null value",
			payload: map[string]any{"first_name": "Ada", "last_name": nil, "industry_connected": true},
			missing: []string{"last_name"},
		},
		{
			name:    "optional field absent",
			payload: map[string]any{"first_name": "Ada", "industry_connected": true},
			missing: []string{"last_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.payload, CandidateCreate)
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if !reflect.DeepEqual(vErr.Missing, tt.missing) {
				t.Errorf("expected missing %v, got %v", tt.missing, vErr.Missing)
			}
		})
	}
}

func TestCheck_InvalidType(t *testing.T) {
	err := Check(map[string]any{
		"first_name":         "Ada",
		"last_name":          "Lovelace",
		"industry_connected": "yes",
		"party_id":           1.5,
	}, CandidateCreate)

	if !errors.Is(err, ErrInvalidFields) {
		t.Fatalf("expected ErrInvalidFields, got %v", err)
	}
	if errors.Is(err, ErrMissingFields) {
		t.Error("no fields are missing")
	}

	var vErr *ValidationError
	errors.As(err, &vErr)
	want := []string{"industry_connected", "party_id"}
	if !reflect.DeepEqual(vErr.Invalid, want) {
		t.Errorf("expected invalid %v, got %v", want, vErr.Invalid)
	}
}

func TestCheck_MaxLen(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		invalid bool
	}{
		{"at limit", strings.Repeat("a", 30), false},
		{"over limit", strings.Repeat("a", 31), true},
		{"multibyte at limit", strings.Repeat("я", 30), false},
		{"surrounding spaces ignored", "  " + strings.Repeat("a", 30) + "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(map[string]any{
				"first_name":         tt.first,
				"last_name":          "Lovelace",
				"industry_connected": true,
			}, CandidateCreate)

			if got := errors.Is(err, ErrInvalidFields); got != tt.invalid {
				t.Fatalf("expected invalid=%v, got %v", tt.invalid, err)
			}
			if tt.invalid && err.Error() != "Invalid first_name specified." {
				t.Errorf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestCheck_IntOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"float at 2^63", float64(math.MaxInt64)},
		{"float below min", -math.MaxFloat64},
		{"number past int64", json.Number("9223372036854775808")},
		{"string past int64", "9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(map[string]any{"party_id": tt.value}, CandidateUpdate)
			if !errors.Is(err, ErrInvalidFields) {
				t.Errorf("expected ErrInvalidFields, got %v", err)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Missing: []string{"first_name", "last_name"},
		Invalid: []string{"party_id"},
	}

	want := "No first_name specified. No last_name specified. Invalid party_id specified."
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

// Свойство: ошибка есть тогда и только тогда, когда хотя бы одно поле пустое.
func TestCheck_ErrorIffAnyFieldMissing(t *testing.T) {
	schema := VoterCreate
	names := schema.Names()

	// Перебираем все подмножества заполненных полей.
	for mask := 0; mask < 1<<len(names); mask++ {
		payload := map[string]any{}
		var missing []string
		for i, name := range names {
			if mask&(1<<i) != 0 {
				payload[name] = "value"
			} else {
				missing = append(missing, name)
			}
		}

		err := Check(payload, schema)
		if (err != nil) != (len(missing) > 0) {
			t.Fatalf("mask %b: error=%v, missing=%v", mask, err, missing)
		}
		if err == nil {
			continue
		}

		var vErr *ValidationError
		errors.As(err, &vErr)
		if !reflect.DeepEqual(vErr.Missing, missing) {
			t.Errorf("mask %b: expected %v, got %v", mask, missing, vErr.Missing)
		}
	}
}

func TestAccessors(t *testing.T) {
	payload := map[string]any{
		"name":        "  Whig ",
		"description": "",
		"flag":        float64(1),
		"id":          float64(42),
		"id_str":      "7",
	}

	if got := String(payload, "name"); got != "Whig" {
		t.Errorf("String: expected Whig, got %q", got)
	}
	if got := OptionalString(payload, "description"); got != nil {
		t.Errorf("OptionalString: expected nil for empty, got %q", *got)
	}
	if got := OptionalString(payload, "name"); got == nil || *got != "Whig" {
		t.Errorf("OptionalString: expected Whig, got %v", got)
	}
	if !Bool(payload, "flag") {
		t.Error("Bool: expected true")
	}
	if got := Int(payload, "id"); got != 42 {
		t.Errorf("Int: expected 42, got %d", got)
	}
	if got := Int(payload, "id_str"); got != 7 {
		t.Errorf("Int: expected 7, got %d", got)
	}
	if got := OptionalInt(payload, "id"); got == nil || *got != 42 {
		t.Errorf("OptionalInt: expected 42, got %v", got)
	}
	if got := OptionalInt(payload, "missing"); got != nil {
		t.Errorf("OptionalInt: expected nil, got %d", *got)
	}
}
