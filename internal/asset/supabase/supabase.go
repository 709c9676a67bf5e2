// Package supabase stores assets in a public Supabase Storage bucket.
//
// Objects are named <kind>/<uuid> without an extension, so asset.PublicID of
// the public URL gives back the uuid.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	storage "github.com/supabase-community/storage-go"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/config"
)

// ErrConfig is returned when the url or bucket is missing.
var ErrConfig = errors.New("supabase url and bucket are required")

// objectAPI is the part of the storage client folio uses.
type objectAPI interface {
	UploadFile(bucketID, relativePath string, data io.Reader, opts ...storage.FileOptions) (storage.FileUploadResponse, error)
	RemoveFile(bucketID string, paths []string) ([]storage.FileUploadResponse, error)
}

// Host is an asset.Host on Supabase Storage.
type Host struct {
	api     objectAPI
	bucket  string
	baseURL string
}

var _ asset.Host = (*Host)(nil)

// New creates a Host for cfg.Bucket, authenticated with the service key.
func New(cfg config.Supabase) (*Host, error) {
	if cfg.URL == "" || cfg.Bucket == "" {
		return nil, ErrConfig
	}

	baseURL := strings.TrimSuffix(cfg.URL, "/")

	return &Host{
		api:     storage.NewClient(baseURL+"/storage/v1", cfg.ServiceKey, nil),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload implements asset.Host.
func (h *Host) Upload(_ context.Context, file *asset.File, kind asset.Kind) (asset.Uploaded, error) {
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return asset.Uploaded{}, errors.Wrapf(asset.ErrUpload, "read %s: %v", file.Filename, err)
	}

	id := uuid.NewString()
	path := h.objectPath(id, kind)
	contentType := mimetype.Detect(data).String()
	upsert := false

	if _, err = h.api.UploadFile(h.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return asset.Uploaded{}, errors.Wrapf(asset.ErrUpload, "supabase: %v", err)
	}

	return asset.Uploaded{URL: h.publicURL(path), PublicID: id}, nil
}

// Destroy implements asset.Host.
func (h *Host) Destroy(_ context.Context, publicID string, kind asset.Kind) error {
	path := h.objectPath(publicID, kind)

	removed, err := h.api.RemoveFile(h.bucket, []string{path})
	if err != nil {
		return errors.Wrapf(err, "supabase: remove %s", path)
	}

	if len(removed) == 0 {
		return errors.Wrap(asset.ErrNotFoundOnRemote, path)
	}

	return nil
}

func (h *Host) objectPath(id string, kind asset.Kind) string {
	return string(kind) + "/" + id
}

func (h *Host) publicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", h.baseURL, h.bucket, path)
}
