package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry("WIDGET")
	notFound := registry.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	t.Run("codes are domain prefixed", func(t *testing.T) {
		assert.Equal(t, "WIDGET_NOT_FOUND", notFound.Code)
	})

	t.Run("new errors carry the registered metadata", func(t *testing.T) {
		err := registry.New(notFound)
		assert.Equal(t, TypeNotFound, err.Type)
		assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
		assert.Equal(t, "Widget not found", err.Message)
	})

	t.Run("cause is unwrappable", func(t *testing.T) {
		cause := fmt.Errorf("row missing")
		err := registry.NewWithCause(notFound, cause)
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "row missing")
	})
}

func TestWithDetail(t *testing.T) {
	registry := NewRegistry("WIDGET")
	code := registry.Register("INVALID", TypeValidation, http.StatusBadRequest, "Invalid widget")

	err := registry.New(code).
		WithDetail("field", "name").
		WithDetails(map[string]any{"length": 3})

	resp := err.ToHTTPResponse()
	details, ok := resp["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "name", details["field"])
	assert.Equal(t, 3, details["length"])
}

func TestIsType(t *testing.T) {
	registry := NewRegistry("WIDGET")
	code := registry.Register("CONFLICT", TypeConflict, http.StatusConflict, "Widget exists")

	assert.True(t, IsType(registry.New(code), TypeConflict))
	assert.False(t, IsType(registry.New(code), TypeNotFound))
	assert.False(t, IsType(fmt.Errorf("plain"), TypeConflict))
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := Wrap(cause, "upstream unavailable", TypeExternal)

	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Equal(t, "EXTERNAL_ERROR", err.Code)
	assert.True(t, errors.Is(err, cause))
}
