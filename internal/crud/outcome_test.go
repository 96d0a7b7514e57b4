package crud

import (
	"errors"
	"testing"

	"placement_dashboard/pkg/httpClient"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeFromError(t *testing.T) {
	apiErr := &httpClient.APIError{
		Status:  400,
		Message: "Validation failed",
		Body:    []byte(`{"statusCode":400,"message":"Validation failed","errors":{"name":["Required"],"code":["Bad"]}}`),
	}

	out := OutcomeFromError(apiErr, []string{"name"})
	assert.False(t, out.OK)
	assert.Equal(t, "Validation failed", out.Message)
	assert.Equal(t, map[string][]string{"name": {"Required"}}, out.FieldErrors)
	assert.Equal(t, "code: Bad", out.FormError)
}

func TestOutcomeFromTransportError(t *testing.T) {
	out := OutcomeFromError(errors.New("connection refused"), []string{"name"})
	assert.False(t, out.OK)
	assert.Equal(t, DefaultErrorMessage, out.Message)
	assert.Equal(t, DefaultErrorMessage, out.FormError)
	assert.Nil(t, out.FieldErrors)
}
