package validation

import (
	"errors"
	"testing"
)

type color string

func (c color) Valid() bool { return c == "red" || c == "blue" }

type sample struct {
	Name   string  `json:"name" validate:"required"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Score  int     `json:"score" validate:"min=0,max=100"`
	Color  color   `json:"color" validate:"required,enum"`
	Tint   *color  `json:"tint,omitempty" validate:"omitempty,skillcategory"`
	Slug   string  `json:"slug" validate:"omitempty,slug"`
	Ignore string  `json:"-"`
	Ptr    *string `json:"ptr,omitempty" validate:"omitempty,min=2"`
}

func TestStruct(t *testing.T) {
	bad := color("green")
	short := "x"
	tests := []struct {
		name    string
		in      sample
		wantErr map[string]string
	}{
		{
			name: "valid",
			in:   sample{Name: "a", Score: 50, Color: "red", Slug: "hello-world"},
		},
		{
			name: "missing name and bad enum",
			in:   sample{Score: 10, Color: "green"},
			wantErr: map[string]string{
				"name":  "is required",
				"color": "is not an allowed value",
			},
		},
		{
			name: "range slug and pointer fields",
			in:   sample{Name: "a", Score: 101, Color: "blue", Tint: &bad, Slug: "Hello World", Ptr: &short},
			wantErr: map[string]string{
				"score": "must be at most 100",
				"tint":  "is not an allowed value",
				"slug":  "must contain only lowercase letters, digits and single hyphens",
				"ptr":   "must be at least 2 characters long",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			got := ToDetails(err)
			for field, msg := range tt.wantErr {
				if got[field] != msg {
					t.Errorf("expected %s: %q, got %q", field, msg, got[field])
				}
			}
		})
	}
}

func TestToDetailsFallback(t *testing.T) {
	got := ToDetails(errors.New("boom"))
	if got["payload"] != "invalid payload" {
		t.Errorf("expected fallback payload message, got %v", got)
	}
	if ToDetails(nil) != nil {
		t.Error("expected nil details for nil error")
	}
}
