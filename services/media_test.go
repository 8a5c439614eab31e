package services

import (
	"bytes"
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStore) Key(name string) string {
	return "site/" + name
}

func (m *memoryStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.objects[key] = data
	m.types[key] = contentType
	return "https://cdn.test/" + key, nil
}

func encodeImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func TestUploadImageResizesWideImages(t *testing.T) {
	store := newMemoryStore()
	svc := NewMediaService(store, 800, 80, 5<<20)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	up, err := svc.UploadImage(context.Background(), "Posts", "Capa do Culto.JPG", bytes.NewReader(encodeImage(t, 1600, 900, imaging.JPEG)))
	require.NoError(t, err)

	assert.Equal(t, 800, up.Width)
	assert.Equal(t, 450, up.Height)
	assert.Equal(t, "image/jpeg", up.ContentType)
	assert.True(t, strings.HasPrefix(up.Key, "site/posts/20260301-"), up.Key)
	assert.True(t, strings.HasSuffix(up.Key, "-capa-do-culto.jpg"), up.Key)
	assert.Equal(t, "https://cdn.test/"+up.Key, up.URL)
	assert.Equal(t, "image/jpeg", store.types[up.Key])
	assert.Len(t, store.objects[up.Key], up.Size)
}

func TestUploadImageKeepsPNGAndSmallSizes(t *testing.T) {
	store := newMemoryStore()
	svc := NewMediaService(store, 800, 80, 5<<20)

	up, err := svc.UploadImage(context.Background(), "", "logo.png", bytes.NewReader(encodeImage(t, 120, 60, imaging.PNG)))
	require.NoError(t, err)

	assert.Equal(t, 120, up.Width)
	assert.Equal(t, "image/png", up.ContentType)
	assert.True(t, strings.HasPrefix(up.Key, "site/uploads/"), up.Key)
	assert.True(t, strings.HasSuffix(up.Key, ".png"))
}

func TestUploadImageRejectsNonImages(t *testing.T) {
	svc := NewMediaService(newMemoryStore(), 800, 80, 5<<20)

	_, err := svc.UploadImage(context.Background(), "posts", "notes.txt", strings.NewReader("apenas texto"))
	require.Error(t, err)
	assert.Equal(t, 415, errs.StatusCode(err))
}

func TestUploadImageRejectsLargeFiles(t *testing.T) {
	svc := NewMediaService(newMemoryStore(), 800, 80, 10)

	_, err := svc.UploadImage(context.Background(), "posts", "big.png", bytes.NewReader(encodeImage(t, 50, 50, imaging.PNG)))
	require.Error(t, err)
	assert.Equal(t, 413, errs.StatusCode(err))
}
