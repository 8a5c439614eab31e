package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	puts    map[string][]byte
	input   *s3.PutObjectInput
	deleted []string
	err     error
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[aws.ToString(in.Key)] = body
	f.input = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

func TestClientPut(t *testing.T) {
	api := &fakeObjectAPI{}
	c := newClient(api, "media", "/site/", "https://cdn.igreja.org/")

	key := c.Key("/posts/capa.jpg")
	assert.Equal(t, "site/posts/capa.jpg", key)

	url, err := c.Put(context.Background(), key, "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.igreja.org/site/posts/capa.jpg", url)
	assert.Equal(t, []byte("jpeg"), api.puts[key])
	assert.Equal(t, "media", aws.ToString(api.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(api.input.ContentType))
	assert.EqualValues(t, 4, aws.ToInt64(api.input.ContentLength))

	got, ok := c.KeyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, key, got)

	_, ok = c.KeyFromURL("https://elsewhere.org/x.jpg")
	assert.False(t, ok)
}

func TestClientPutFailure(t *testing.T) {
	c := newClient(&fakeObjectAPI{err: errors.New("denied")}, "media", "", "https://cdn.igreja.org")

	_, err := c.Put(context.Background(), "a.jpg", "image/jpeg", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, 502, errs.StatusCode(err))
}

func TestClientDelete(t *testing.T) {
	api := &fakeObjectAPI{}
	c := newClient(api, "media", "", "https://cdn.igreja.org")

	require.NoError(t, c.Delete(context.Background(), "a.jpg"))
	assert.Equal(t, []string{"a.jpg"}, api.deleted)
	assert.Empty(t, c.PublicURL(""))
}
