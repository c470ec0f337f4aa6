package validation

import (
	"errors"
	"strings"
	"testing"
)

type color int

func (c color) Valid() bool { return c == 1 || c == 2 }

type sample struct {
	Name   string  `validate:"required"`
	Width  float64 `validate:"gt=0"`
	X      float64 `validate:"gte=0"`
	Color  color   `validate:"enum"`
	Points []inner `validate:"dive"`
}

type inner struct {
	Y float64 `validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name        string
		value       sample
		expectError bool
		errorField  string
	}{
		{
			name:  "valid",
			value: sample{Name: "a", Width: 1, Color: 1},
		},
		{
			name:        "missing name",
			value:       sample{Width: 1, Color: 1},
			expectError: true,
			errorField:  "Name",
		},
		{
			name:        "zero width",
			value:       sample{Name: "a", Color: 2},
			expectError: true,
			errorField:  "Width",
		},
		{
			name:        "negative coordinate",
			value:       sample{Name: "a", Width: 1, X: -1, Color: 1},
			expectError: true,
			errorField:  "X",
		},
		{
			name:        "unknown enum",
			value:       sample{Name: "a", Width: 1, Color: 7},
			expectError: true,
			errorField:  "Color",
		},
		{
			name:        "nested element",
			value:       sample{Name: "a", Width: 1, Color: 1, Points: []inner{{Y: -2}}},
			expectError: true,
			errorField:  "Points[0].Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Expected ErrInvalid, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errorField) {
					t.Errorf("Expected error mentioning %q, got %v", tt.errorField, err)
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestStructNil(t *testing.T) {
	if err := Struct(nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("Struct(nil) = %v, want ErrInvalid", err)
	}
}
