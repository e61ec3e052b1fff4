package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/admetrics-hub/admetrics-backend/internal/attachments/storage"
	authdomain "github.com/admetrics-hub/admetrics-backend/internal/auth/domain"
)

var ErrInvalidFilename = errors.New("invalid filename")

// BlobStore is the bucket surface; satisfied by storage.Store.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// AccessChecker scopes customer visibility; satisfied by the customers
// service.
type AccessChecker interface {
	CanView(ctx context.Context, user *authdomain.User, customerID string) (bool, error)
}

// Attachment is an uploaded customer document.
type Attachment struct {
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type AttachmentService struct {
	store  BlobStore
	access AccessChecker
}

func NewAttachmentService(store BlobStore, access AccessChecker) *AttachmentService {
	return &AttachmentService{store: store, access: access}
}

var attachmentWrite = authdomain.RequireAnyRole(authdomain.RoleAdmin, authdomain.RoleUser)

// Upload stores a document under the customer's prefix. The object key is
// prefixed with a fresh UUID so repeated uploads of the same filename never
// overwrite each other.
func (s *AttachmentService) Upload(ctx context.Context, actor *authdomain.User, customerID, filename, contentType string, size int64, body io.Reader) (*Attachment, error) {
	if !actor.HasPermission(attachmentWrite) {
		return nil, authdomain.ErrForbidden
	}

	name := sanitizeFilename(filename)
	if name == "" {
		return nil, ErrInvalidFilename
	}

	key := fmt.Sprintf("%s%s-%s", customerPrefix(customerID), uuid.New().String(), name)
	if err := s.store.Upload(ctx, key, contentType, body); err != nil {
		return nil, err
	}

	return &Attachment{
		Key:        key,
		Name:       name,
		Size:       size,
		URL:        s.store.URL(key),
		UploadedAt: time.Now(),
	}, nil
}

func (s *AttachmentService) List(ctx context.Context, actor *authdomain.User, customerID string) ([]Attachment, error) {
	ok, err := s.access.CanView(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authdomain.ErrForbidden
	}

	prefix := customerPrefix(customerID)
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]Attachment, 0, len(objects))
	for _, obj := range objects {
		out = append(out, Attachment{
			Key:        obj.Key,
			Name:       displayName(strings.TrimPrefix(obj.Key, prefix)),
			Size:       obj.Size,
			URL:        s.store.URL(obj.Key),
			UploadedAt: obj.LastModified,
		})
	}
	return out, nil
}

// Delete removes a document. The key must live under the customer's prefix
// so one customer's delete can never reach another's documents.
func (s *AttachmentService) Delete(ctx context.Context, actor *authdomain.User, customerID, key string) error {
	if !actor.HasPermission(attachmentWrite) {
		return authdomain.ErrForbidden
	}

	if !strings.HasPrefix(key, customerPrefix(customerID)) {
		return ErrInvalidFilename
	}
	return s.store.Delete(ctx, key)
}

func customerPrefix(customerID string) string {
	return fmt.Sprintf("customers/%s/", customerID)
}

// sanitizeFilename keeps only the base name and rejects path tricks.
func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

// displayName strips the uuid prefix added at upload time.
func displayName(stored string) string {
	// 36-char uuid plus the joining dash.
	if len(stored) > 37 {
		if _, err := uuid.Parse(stored[:36]); err == nil && stored[36] == '-' {
			return stored[37:]
		}
	}
	return stored
}
