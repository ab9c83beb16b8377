package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name     string
		calls    []int
		wantCode int
	}{
		{name: "single call", calls: []int{http.StatusCreated}, wantCode: http.StatusCreated},
		{name: "double call first wins", calls: []int{http.StatusForbidden, http.StatusOK}, wantCode: http.StatusForbidden},
		{name: "triple call first wins", calls: []int{http.StatusNotFound, http.StatusOK, http.StatusTeapot}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rr}

			for _, code := range tt.calls {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.wantCode, w.status)
			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write([]byte(`{"users":1}`))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 11, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 12, w.size)
	assert.Equal(t, "{\"users\":1}\n", rr.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	assert.Same(t, rr, w.Unwrap())
}
