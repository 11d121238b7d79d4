package gridfs

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := Connect(context.Background(), uri)
	if err != nil {
		t.Skipf("mongo is not available: %v", err)
	}

	db := client.Database("realty_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", ""))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s, err := New(db, "images", "http://localhost:8080/")
	require.NoError(t, err)
	return s
}

func TestStorage_ViewURL(t *testing.T) {
	s := &Storage{publicURL: "https://realty.example.com"}
	assert.Equal(t, "https://realty.example.com/api/v1/files/abc/view", s.ViewURL("abc"))
}

func TestStorage_UploadOpenDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.Upload(ctx, "front.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var buf bytes.Buffer
	contentType, err := s.Open(ctx, id, &buf)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, "jpeg-bytes", buf.String())

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Open(ctx, id, &buf)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), ErrFileNotFound)
}
