package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/spaces_gateway/internal/error_notificator"
	"github.com/Vovarama1992/spaces_gateway/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOrigin = "https://nyc3.digitaloceanspaces.com"
	testBucket = "media"
)

type memS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	credErr  error
	storeErr error
	expires  time.Duration
}

func newMemS3() *memS3 {
	return &memS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memS3) PresignPut(_ context.Context, bucket, key string, expires time.Duration) (string, error) {
	if m.credErr != nil {
		return "", m.credErr
	}
	m.expires = expires
	return fmt.Sprintf("%s/%s/%s?X-Amz-Expires=%d", testOrigin, bucket, key, int(expires.Seconds())), nil
}

func (m *memS3) PutObject(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.credErr != nil {
		return m.credErr
	}
	if m.storeErr != nil {
		return m.storeErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return fmt.Errorf("size mismatch: %d != %d", len(b), size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func (m *memS3) RemoveObject(_ context.Context, key string) error {
	if m.credErr != nil {
		return ports.NewStorageError(ports.Unexpected, m.credErr)
	}
	if m.storeErr != nil {
		return m.storeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memS3) PublicURL(key string) string {
	return testOrigin + "/" + testBucket + "/" + key
}

type recordingNotificator struct {
	ops []string
}

func (r *recordingNotificator) Notify(_ context.Context, op string, _ error, _ string) error {
	r.ops = append(r.ops, op)
	return nil
}

func newService(client ports.S3Client) (ports.S3Service, *recordingNotificator) {
	n := &recordingNotificator{}
	return NewS3Service(client, error_notificator.NewService(n), 120*time.Second), n
}

func TestGeneratePresignedURL(t *testing.T) {
	store := newMemS3()
	svc, _ := newService(store)

	res, err := svc.GeneratePresignedURL(context.Background(), ports.PresignRequest{BucketName: "uploads", ObjectKey: "a.png"})
	require.NoError(t, err)

	assert.Equal(t, 120*time.Second, res.ExpiresIn)
	assert.Equal(t, 120*time.Second, store.expires)
	assert.Equal(t, testOrigin+"/uploads/a.png?X-Amz-Expires=120", res.URL)
}

func TestGeneratePresignedURLValidation(t *testing.T) {
	svc, _ := newService(newMemS3())

	for _, req := range []ports.PresignRequest{
		{BucketName: "", ObjectKey: "a.png"},
		{BucketName: "uploads", ObjectKey: ""},
	} {
		_, err := svc.GeneratePresignedURL(context.Background(), req)
		assert.True(t, IsValidation(err), "request %+v", req)
	}
}

func TestUploadObject(t *testing.T) {
	store := newMemS3()
	svc, _ := newService(store)

	res, err := svc.UploadObject(context.Background(), ports.UploadRequest{
		FileBytes: []byte("hello"),
		Filename:  "test.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, testOrigin+"/"+testBucket+"/test.txt", res.FileURL)
	assert.Equal(t, []byte("hello"), store.objects["test.txt"])
	assert.Equal(t, "text/plain; charset=utf-8", store.types["test.txt"])
}

func TestUploadObjectKeepsContentType(t *testing.T) {
	store := newMemS3()
	svc, _ := newService(store)

	_, err := svc.UploadObject(context.Background(), ports.UploadRequest{
		FileBytes:   []byte("{}"),
		Filename:    "cfg.json",
		ContentType: "application/json",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", store.types["cfg.json"])
}

func TestUploadObjectPayload(t *testing.T) {
	store := newMemS3()
	svc, _ := newService(store)

	_, err := svc.UploadObject(context.Background(), ports.UploadRequest{Filename: "x.bin"})
	assert.ErrorIs(t, err, ErrNoFile)

	res, err := svc.UploadObject(context.Background(), ports.UploadRequest{FileBytes: []byte{}, Filename: "empty.bin"})
	require.NoError(t, err)
	assert.Equal(t, testOrigin+"/"+testBucket+"/empty.bin", res.FileURL)
	assert.Equal(t, "application/octet-stream", store.types["empty.bin"])

	_, err = svc.UploadObject(context.Background(), ports.UploadRequest{FileBytes: []byte("x")})
	assert.True(t, IsValidation(err))
}

func TestCredentialErrorsPropagate(t *testing.T) {
	for _, kind := range []ports.StorageErrorKind{ports.CredentialsMissing, ports.CredentialsIncomplete} {
		t.Run(kind.String(), func(t *testing.T) {
			store := newMemS3()
			cause := ports.ErrNoCredentials
			if kind == ports.CredentialsIncomplete {
				cause = ports.ErrPartialCredentials
			}
			store.credErr = ports.NewStorageError(kind, cause)
			svc, n := newService(store)

			_, err := svc.GeneratePresignedURL(context.Background(), ports.PresignRequest{BucketName: "b", ObjectKey: "k"})
			assert.Equal(t, kind, ports.KindOf(err))

			_, err = svc.UploadObject(context.Background(), ports.UploadRequest{FileBytes: []byte("x"), Filename: "k"})
			assert.Equal(t, kind, ports.KindOf(err))

			err = svc.DeleteObject(context.Background(), ports.DeleteRequest{Filename: "k"})
			assert.Equal(t, ports.Unexpected, ports.KindOf(err))

			// о проблемах конфигурации ключей не уведомляем
			assert.Empty(t, n.ops)
		})
	}
}

func TestUnexpectedErrorsAreNotified(t *testing.T) {
	store := newMemS3()
	store.storeErr = ports.NewStorageError(ports.Unexpected, errors.New("NoSuchBucket"))
	svc, n := newService(store)

	_, err := svc.UploadObject(context.Background(), ports.UploadRequest{FileBytes: []byte("x"), Filename: "k"})
	assert.EqualError(t, err, "NoSuchBucket")

	err = svc.DeleteObject(context.Background(), ports.DeleteRequest{Filename: "k"})
	assert.Equal(t, ports.Unexpected, ports.KindOf(err))

	assert.Equal(t, []string{"upload", "delete"}, n.ops)
}

func TestDeleteRoundTrip(t *testing.T) {
	store := newMemS3()
	svc, _ := newService(store)
	ctx := context.Background()

	// ни разу не загружали
	require.NoError(t, svc.DeleteObject(ctx, ports.DeleteRequest{Filename: "X"}))

	_, err := svc.UploadObject(ctx, ports.UploadRequest{FileBytes: []byte("data"), Filename: "X"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteObject(ctx, ports.DeleteRequest{Filename: "X"}))
	assert.NotContains(t, store.objects, "X")

	require.NoError(t, svc.DeleteObject(ctx, ports.DeleteRequest{Filename: "X"}))

	err = svc.DeleteObject(ctx, ports.DeleteRequest{})
	assert.True(t, IsValidation(err))
}
