package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", 404, `{"error":"x","code":"not_found"}`, ErrNotFound},
		{"already processed", 409, `{"error":"x","code":"already_processed"}`, ErrAlreadyProcessed},
		{"invalid input", 422, `{"error":"x","code":"invalid_input"}`, ErrInvalidInput},
		{"validation", 422, `{"error":"x","code":"validation_failed"}`, ErrInvalidInput},
		{"bad body", 400, `{"error":"x","code":"invalid_body"}`, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := decodeError("op", tc.status, []byte(tc.body))
			assert.ErrorIs(t, err, tc.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
		})
	}
}

func TestDecodeError_InvalidTransitionCarriesMeta(t *testing.T) {
	err := decodeError("op", http.StatusConflict,
		[]byte(`{"error":"x","code":"invalid_transition","meta":{"estado":"RECHAZADO","accion":"aprobar"}}`))

	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, StatusRechazado, ite.Status)
	assert.Equal(t, ActionAprobar, ite.Action)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecodeError_TransportFailures(t *testing.T) {
	for _, tc := range []struct {
		status int
		body   string
	}{
		{http.StatusInternalServerError, `{"error":"boom","code":"internal"}`},
		{http.StatusBadGateway, `<html>bad gateway</html>`},
		{http.StatusTeapot, ``},
	} {
		err := decodeError("op", tc.status, []byte(tc.body))
		var te *TransportError
		require.True(t, errors.As(err, &te), "status %d", tc.status)
		assert.Equal(t, tc.status, te.Status)
	}
}

func TestDecodeError_UnknownClientCode(t *testing.T) {
	err := decodeError("op", http.StatusBadRequest, []byte(`{"error":"missing X-Request-Id","code":"invalid_header"}`))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_header", apiErr.Code)
	assert.Nil(t, errors.Unwrap(err))
}
