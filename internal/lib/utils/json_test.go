package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJSONSerializer_Serialize(t *testing.T) {
	c, rec := newContext("")

	err := JSONSerializer{}.Serialize(c, map[string]any{"success": true}, "")
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestJSONSerializer_Deserialize(t *testing.T) {
	var body struct {
		APIKey string `json:"apiKey"`
	}

	c, _ := newContext(`{"apiKey":"k"}`)
	require.NoError(t, JSONSerializer{}.Deserialize(c, &body))
	assert.Equal(t, "k", body.APIKey)
}

func TestJSONSerializer_DeserializeErrors(t *testing.T) {
	var body struct {
		Limit int `json:"limit"`
	}

	for _, raw := range []string{`{"limit":"ten"}`, `{"limit":`, `not json`} {
		c, _ := newContext(raw)

		err := JSONSerializer{}.Deserialize(c, &body)

		var echoErr *echo.HTTPError
		require.True(t, errors.As(err, &echoErr), raw)
		assert.Equal(t, http.StatusBadRequest, echoErr.Code, raw)
	}
}
