package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"loft"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "loft", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"loft","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "слот занят")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слот занят"}`, w.Body.String())
}

func TestRespondInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondInternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+msgInternalError+`"}`, w.Body.String())
}
