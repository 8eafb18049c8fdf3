package local

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonhwa/bloomdesk/internal/photostore"
)

func TestStore_SaveAndGet(t *testing.T) {
	store, err := New(t.TempDir(), "/photos")
	require.NoError(t, err)

	ctx := context.Background()
	imageData := []byte("fake jpeg data")

	key, err := store.Save(ctx, "card", "image/jpeg", bytes.NewReader(imageData))
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	reader, mimeType, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "image/jpeg", mimeType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, imageData, data)
}

func TestStore_Delete(t *testing.T) {
	store, err := New(t.TempDir(), "/photos")
	require.NoError(t, err)

	ctx := context.Background()

	key, err := store.Save(ctx, "card", "image/png", bytes.NewReader([]byte("png data")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, photostore.ErrNotFound)
}

func TestStore_PublicURL(t *testing.T) {
	store, err := New(t.TempDir(), "/photos/")
	require.NoError(t, err)

	assert.Equal(t, "/photos/card_1.jpg", store.PublicURL("card_1.jpg"))
}

func TestStore_PathTraversal(t *testing.T) {
	store, err := New(t.TempDir(), "/photos")
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "../../etc/passwd")
	assert.Error(t, err)

	assert.Error(t, store.Delete(context.Background(), "../escape.jpg"))
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, photostore.ValidateUpload("image/jpeg", 1024))
	assert.NoError(t, photostore.ValidateUpload("image/webp", photostore.MaxBytes))
	assert.ErrorIs(t, photostore.ValidateUpload("image/gif", 1024), photostore.ErrUnsupportedType)
	assert.ErrorIs(t, photostore.ValidateUpload("application/pdf", 1024), photostore.ErrUnsupportedType)
	assert.ErrorIs(t, photostore.ValidateUpload("image/png", photostore.MaxBytes+1), photostore.ErrTooLarge)
}
