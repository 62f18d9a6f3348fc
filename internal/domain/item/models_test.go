package item

import (
	"strings"
	"testing"
)

func TestAddItemParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  AddItemParams
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid params",
			params:  AddItemParams{Name: "Milk", Quantity: 2},
			wantErr: false,
		},
		{
			name:    "missing name",
			params:  AddItemParams{Name: "", Quantity: 1},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "whitespace only name",
			params:  AddItemParams{Name: "   ", Quantity: 1},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "name too long",
			params:  AddItemParams{Name: strings.Repeat("a", 257), Quantity: 1},
			wantErr: true,
			errMsg:  "name must be 256 characters or less",
		},
		{
			name:    "name exactly 256 chars",
			params:  AddItemParams{Name: strings.Repeat("a", 256), Quantity: 1},
			wantErr: false,
		},
		{
			name:    "zero quantity",
			params:  AddItemParams{Name: "Eggs", Quantity: 0},
			wantErr: true,
			errMsg:  "quantity must be positive",
		},
		{
			name:    "negative quantity",
			params:  AddItemParams{Name: "Eggs", Quantity: -3},
			wantErr: true,
			errMsg:  "quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("Validate() expected error, got nil")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "plain number", raw: "3", want: 3},
		{name: "padded number", raw: " 12 ", want: 12},
		{name: "empty", raw: "", want: 1},
		{name: "not a number", raw: "a dozen", want: 1},
		{name: "zero coerces to one", raw: "0", want: 1},
		{name: "negative coerces to one", raw: "-5", want: 1},
		{name: "float is unparsable", raw: "2.5", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuantity(tt.raw); got != tt.want {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
