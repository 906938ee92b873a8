package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjects implements objectAPI without a network.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr     error
	putSize    int64
	putOptions minioLib.PutObjectOptions
	putKey     string

	getRC  io.ReadCloser
	getErr error

	removeErr error

	statErr error
}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _ string, key string, _ io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey, f.putSize, f.putOptions = key, size, opts
	return minioLib.UploadInfo{}, f.putErr
}

func (f *fakeObjects) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeObjects) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

func (f *fakeObjects) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeObjects{bucketExists: true}
		c, err := newClient(ctx, api, "photos")
		require.NoError(t, err)
		assert.Equal(t, "photos", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("bucket created", func(t *testing.T) {
		api := &fakeObjects{}
		_, err := newClient(ctx, api, "photos")
		require.NoError(t, err)
		assert.Equal(t, "photos", api.madeBucket)
	})

	t.Run("existence check fails", func(t *testing.T) {
		c, err := newClient(ctx, &fakeObjects{bucketExistsErr: errors.New("boom")}, "photos")
		assert.Nil(t, c)
		assert.ErrorContains(t, err, "failed to ensure bucket exists")
	})

	t.Run("creation fails", func(t *testing.T) {
		c, err := newClient(ctx, &fakeObjects{makeBucketErr: errors.New("denied")}, "photos")
		assert.Nil(t, c)
		assert.ErrorContains(t, err, "failed to create bucket")
	})
}

func TestClient_Ping(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, (&Client{api: &fakeObjects{bucketExists: true}, bucket: "b"}).Ping(ctx))
	assert.ErrorContains(t, (&Client{api: &fakeObjects{}, bucket: "b"}).Ping(ctx), "does not exist")
	assert.ErrorContains(t, (&Client{api: &fakeObjects{bucketExistsErr: errors.New("down")}, bucket: "b"}).Ping(ctx), "failed to reach bucket")
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("sized reader", func(t *testing.T) {
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "b"}

		err := c.Upload(ctx, "photos/1.jpeg", bytes.NewReader([]byte("data")))
		require.NoError(t, err)
		assert.Equal(t, "photos/1.jpeg", api.putKey)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "image/jpeg", api.putOptions.ContentType)
	})

	t.Run("unsized reader", func(t *testing.T) {
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "b"}

		err := c.Upload(ctx, "k", io.LimitReader(bytes.NewReader([]byte("data")), 2))
		require.NoError(t, err)
		assert.Equal(t, int64(-1), api.putSize)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{putErr: errors.New("put-fail")}, bucket: "b"}
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")))
		assert.ErrorContains(t, err, "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := &Client{api: &fakeObjects{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{getErr: errors.New("get-fail")}, bucket: "b"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		assert.ErrorContains(t, err, "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, (&Client{api: &fakeObjects{}, bucket: "b"}).Delete(ctx, "k"))

	err := (&Client{api: &fakeObjects{removeErr: errors.New("remove-fail")}, bucket: "b"}).Delete(ctx, "k")
	assert.ErrorContains(t, err, "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		statErr error
		want    bool
		wantErr bool
	}{
		"exists":      {want: true},
		"not found":   {statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		"other error": {statErr: errors.New("stat-fail"), wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Client{api: &fakeObjects{statErr: tt.statErr}, bucket: "b"}
			ok, err := c.Exists(ctx, "k")
			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to stat object")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}
