package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.True(t, CheckPassword("Secret123", hash))
	assert.False(t, CheckPassword("secret123", hash))
}

func TestSnowflakeIncreasing(t *testing.T) {
	sf, err := NewSnowflake(1)
	require.NoError(t, err)

	prev := int64(0)
	for i := 0; i < 100; i++ {
		id, err := sf.NextID()
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.WithinDuration(t, time.Now(), TimeOf(prev), time.Second)

	_, err = NewSnowflake(workerMax + 1)
	assert.Error(t, err)
}

func TestPagedResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	next := "http://host/api/v1/cities/?page=3"
	PagedResponse(c, []string{"a"}, 21, &next, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["hasNextPage"])
	assert.Equal(t, next, body["next"])
	assert.Nil(t, body["previous"])
	assert.Equal(t, float64(21), body["count"])
}

func TestValidationFailedShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationFailed(c, map[string][]string{"name": {"Name is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"statusCode":400,"message":"Validation failed","errors":{"name":["Name is required"]}}`,
		w.Body.String())
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersion(&buf, true))

	var v map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.NotEmpty(t, v["version"])

	buf.Reset()
	require.NoError(t, PrintVersion(&buf, false))
	assert.Contains(t, buf.String(), "v")
}
