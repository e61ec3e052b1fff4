package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admetrics-hub/admetrics-backend/internal/attachments/storage"
	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

type fakeBlobStore struct {
	objects map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) List(_ context.Context, prefix string) ([]storage.Object, error) {
	out := []storage.Object{}
	for key, data := range f.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.Object{Key: key, Size: int64(len(data)), LastModified: time.Now()})
		}
	}
	return out, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) URL(key string) string {
	return "https://cdn.example.com/" + key
}

type allowAll struct{}

func (allowAll) CanView(context.Context, *authdomain.User, string) (bool, error) {
	return true, nil
}

var (
	staffUser  = &authdomain.User{ID: "u-1", Role: authdomain.RoleUser}
	clientUser = &authdomain.User{ID: "u-2", Role: authdomain.RoleClient}
)

func TestAttachmentService_UploadAndList(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewAttachmentService(store, allowAll{})
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, staffUser, "c-1", "report.pdf", "application/pdf", 4, bytes.NewReader([]byte("data")))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", uploaded.Name)
	assert.True(t, strings.HasPrefix(uploaded.Key, "customers/c-1/"))

	// Same filename twice gets a distinct key.
	again, err := svc.Upload(ctx, staffUser, "c-1", "report.pdf", "application/pdf", 4, bytes.NewReader([]byte("data")))
	require.NoError(t, err)
	assert.NotEqual(t, uploaded.Key, again.Key)

	docs, err := svc.List(ctx, staffUser, "c-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "report.pdf", docs[0].Name)

	other, err := svc.List(ctx, staffUser, "c-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAttachmentService_UploadRejectsPathTricks(t *testing.T) {
	svc := NewAttachmentService(newFakeBlobStore(), allowAll{})
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, staffUser, "c-1", "../../etc/passwd", "text/plain", 1, bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "passwd", uploaded.Name)
	assert.True(t, strings.HasPrefix(uploaded.Key, "customers/c-1/"))

	_, err = svc.Upload(ctx, staffUser, "c-1", "..", "text/plain", 1, bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, ErrInvalidFilename)
}

func TestAttachmentService_DeleteScopedToCustomer(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewAttachmentService(store, allowAll{})
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, staffUser, "c-1", "report.pdf", "application/pdf", 4, bytes.NewReader([]byte("data")))
	require.NoError(t, err)

	// A key under another customer's prefix is refused.
	err = svc.Delete(ctx, staffUser, "c-2", uploaded.Key)
	assert.ErrorIs(t, err, ErrInvalidFilename)

	require.NoError(t, svc.Delete(ctx, staffUser, "c-1", uploaded.Key))
	assert.Empty(t, store.objects)
}

func TestAttachmentService_ClientCannotWrite(t *testing.T) {
	svc := NewAttachmentService(newFakeBlobStore(), allowAll{})
	ctx := context.Background()

	_, err := svc.Upload(ctx, clientUser, "c-1", "report.pdf", "application/pdf", 1, bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	err = svc.Delete(ctx, clientUser, "c-1", "customers/c-1/x")
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
}
