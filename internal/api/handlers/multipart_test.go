package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/properties", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(1<<20))
	return r
}

func TestFormFloat(t *testing.T) {
	r := newMultipartRequest(t, map[string]string{
		"price":     "1500.5",
		"area":      "NaN",
		"latitude":  "+Inf",
		"longitude": "-inf",
		"empty":     "",
	})

	price, err := FormFloat(r, "price")
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, 1500.5, *price)

	for _, key := range []string{"area", "latitude", "longitude"} {
		_, err := FormFloat(r, key)
		assert.Error(t, err, key)
	}

	missing, err := FormFloat(r, "rooms")
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := FormFloat(r, "empty")
	require.NoError(t, err)
	assert.Nil(t, empty)
}
