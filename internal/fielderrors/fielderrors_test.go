package fielderrors

import (
	"errors"
	"fmt"
	"testing"

	"placement_dashboard/pkg/httpClient"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	known := []string{"name", "city", "logo"}

	tests := []struct {
		name     string
		body     string
		wantFlds FieldErrors
		wantForm string
	}{
		{
			name:     "ErrorsWrapper",
			body:     `{"message":"Validation failed","errors":{"name":["This field is required."],"city":"Invalid city"}}`,
			wantFlds: FieldErrors{"name": {"This field is required."}, "city": {"Invalid city"}},
		},
		{
			name:     "DataWrapper",
			body:     `{"code":400,"message":"validation error","data":{"name":"name is required"}}`,
			wantFlds: FieldErrors{"name": {"name is required"}},
		},
		{
			name:     "FlatWithUnknownKey",
			body:     `{"statusCode":400,"name":["too short"],"slug":["already used"]}`,
			wantFlds: FieldErrors{"name": {"too short"}},
			wantForm: "slug: already used",
		},
		{
			name:     "NonFieldErrors",
			body:     `{"non_field_errors":["Plan overlaps with an existing plan","Try again"]}`,
			wantForm: "Plan overlaps with an existing plan; Try again",
		},
		{
			name:     "NestedObject",
			body:     `{"errors":{"logo":{"size":["too large"],"type":"bad type"}}}`,
			wantFlds: FieldErrors{"logo": {"too large", "bad type"}},
		},
		{
			name: "MessageOnly",
			body: `{"message":"Something broke"}`,
		},
		{
			name: "NotJSON",
			body: `<html>502</html>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse([]byte(tc.body), known)
			assert.Equal(t, tc.wantFlds, res.Fields)
			assert.Equal(t, tc.wantForm, res.FormError)
			assert.Equal(t, tc.wantFlds != nil || tc.wantForm != "", res.HasFieldErrors())
		})
	}
}

func TestExtract(t *testing.T) {
	apiErr := &httpClient.APIError{Status: 400, Body: []byte(`{"errors":{"name":["taken"]}}`)}
	wrapped := fmt.Errorf("create city: %w", apiErr)

	res := Extract(wrapped, []string{"name"})
	assert.Equal(t, FieldErrors{"name": {"taken"}}, res.Fields)

	assert.False(t, Extract(errors.New("network down"), []string{"name"}).HasFieldErrors())
}

func TestClear(t *testing.T) {
	f := FieldErrors{"name": {"x"}, "city": {"y"}}
	f.Clear("name")
	assert.Equal(t, FieldErrors{"city": {"y"}}, f)
}
