// Package cloudinary stores assets on Cloudinary.
package cloudinary

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/config"
)

const destroyNotFound = "not found"

// uploadAPI is the part of cloudinary's uploader folio uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Host is an asset.Host on Cloudinary.
type Host struct {
	api     uploadAPI
	folder  string
	timeout time.Duration
}

var _ asset.Host = (*Host)(nil)

// New creates a Host from the configured credentials.
func New(cfg config.Cloudinary, timeout time.Duration) (*Host, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cloudinary client")
	}

	return &Host{api: &cld.Upload, folder: cfg.Folder, timeout: timeout}, nil
}

// Upload implements asset.Host.
func (h *Host) Upload(ctx context.Context, file *asset.File, kind asset.Kind) (asset.Uploaded, error) {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	res, err := h.api.Upload(ctx, file.Content, uploader.UploadParams{
		Folder:       h.folder,
		ResourceType: string(kind),
	})
	if err != nil {
		return asset.Uploaded{}, errors.Wrapf(asset.ErrUpload, "cloudinary: %v", err)
	}

	if res.Error.Message != "" {
		return asset.Uploaded{}, errors.Wrapf(asset.ErrUpload, "cloudinary: %s", res.Error.Message)
	}

	return asset.Uploaded{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy implements asset.Host. publicID is relative to the configured folder.
func (h *Host) Destroy(ctx context.Context, publicID string, kind asset.Kind) error {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if h.folder != "" {
		publicID = h.folder + "/" + publicID
	}

	res, err := h.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return errors.Wrapf(err, "cloudinary: destroy %s", publicID)
	}

	switch {
	case res.Error.Message != "":
		return errors.Errorf("cloudinary: destroy %s: %s", publicID, res.Error.Message)
	case res.Result == destroyNotFound:
		return errors.Wrap(asset.ErrNotFoundOnRemote, publicID)
	}

	return nil
}

func (h *Host) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, h.timeout)
}
