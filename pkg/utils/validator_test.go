package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cityForm struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"contact_phone" validate:"omitempty,phone"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	v := NewCustomValidator()
	errs := v.Validate(cityForm{Name: "J", Phone: "abc"})
	require.Len(t, errs, 2)

	byField := Messages(errs)
	assert.Equal(t, []string{"Name must be at least 2 characters"}, byField["name"])
	assert.Equal(t, []string{"Contact phone must be a valid phone number"}, byField["contact_phone"])
}

func TestValidateField(t *testing.T) {
	v := NewCustomValidator()

	tests := []struct {
		name    string
		value   interface{}
		tag     string
		wantMsg string
	}{
		{"RequiredEmpty", "", "required", "Title is required"},
		{"NumericMin", 3, "min=5", "Title must be at least 5"},
		{"TextMax", "abcdef", "max=3", "Title must be at most 3 characters"},
		{"StrongPassword", "weak", "strong_password", "Password must be at least 8 characters with upper case, lower case and a number"},
		{"Slug", "Bad Slug", "slug", "Title may only contain lower case letters, digits and dashes"},
		{"Valid", "ok", "required,max=3", ""},
		{"NoTag", "", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := v.ValidateField("title", tc.value, tc.tag)
			if tc.wantMsg == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, "title", errs[0].Field)
			assert.Equal(t, tc.wantMsg, errs[0].Message)
		})
	}
}

func TestCustomRuleMessage(t *testing.T) {
	v := NewCustomValidator()
	v.RegisterCustomRule("price", ValidationRule{Tag: "min", Message: "Price cannot be negative"})

	errs := v.ValidateField("price", -1, "min=0")
	require.Len(t, errs, 1)
	assert.Equal(t, "Price cannot be negative", errs[0].Message)
}

func TestGetValidatorIsShared(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
