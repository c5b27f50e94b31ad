package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, body string) *http.Response {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestDecodeJSONResponse(t *testing.T) {

	t.Run("Success - Decodes body", func(t *testing.T) {
		var dest struct {
			AppName string `json:"appName"`
		}

		err := utils.DecodeJSONResponse(get(t, `{"appName":"Safari"}`), &dest)

		require.NoError(t, err)
		assert.Equal(t, "Safari", dest.AppName)
	})

	t.Run("Failure - Empty body", func(t *testing.T) {
		var dest map[string]any

		err := utils.DecodeJSONResponse(get(t, ""), &dest)

		assert.ErrorContains(t, err, "empty")
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		var dest map[string]any

		err := utils.DecodeJSONResponse(get(t, "<html>"), &dest)

		assert.ErrorContains(t, err, "invalid JSON format")
	})
}

func TestValidateStruct(t *testing.T) {
	type line struct {
		ID       string `validate:"required"`
		Quantity int    `validate:"gte=1"`
	}
	v := validator.New()

	assert.NoError(t, utils.ValidateStruct(v, line{ID: "1", Quantity: 1}))
	assert.ErrorContains(t, utils.ValidateStruct(v, line{Quantity: 0}), "validation error")
}
