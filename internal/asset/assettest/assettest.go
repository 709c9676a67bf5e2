// Package assettest provides an in-memory asset.Host that records every call.
package assettest

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/pkg/errors"

	"github.com/folio-cms/folio/internal/asset"
)

// BaseURL prefixes every URL the fake host hands out.
const BaseURL = "https://assets.test/folio"

// Destroyed is one recorded Destroy call.
type Destroyed struct {
	PublicID string
	Kind     asset.Kind
}

// Host is a recording asset.Host. The zero value is ready to use.
type Host struct {
	// UploadErr, when set, decides per file whether an upload fails.
	UploadErr func(file *asset.File, kind asset.Kind) error
	// DestroyErr, when set, is returned by every Destroy after recording it.
	DestroyErr error

	mu        sync.Mutex
	seq       int
	objects   map[string][]byte
	uploads   []asset.Uploaded
	destroyed []Destroyed
}

var _ asset.Host = (*Host)(nil)

// Upload implements asset.Host. Ids are sequential: asset001, asset002 and so on.
func (h *Host) Upload(_ context.Context, file *asset.File, kind asset.Kind) (asset.Uploaded, error) {
	if h.UploadErr != nil {
		if err := h.UploadErr(file, kind); err != nil {
			return asset.Uploaded{}, errors.Wrap(asset.ErrUpload, err.Error())
		}
	}

	data, err := io.ReadAll(file.Content)
	if err != nil {
		return asset.Uploaded{}, errors.Wrap(asset.ErrUpload, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	id := fmt.Sprintf("asset%03d", h.seq)

	if h.objects == nil {
		h.objects = map[string][]byte{}
	}
	h.objects[id] = data

	up := asset.Uploaded{
		URL:      fmt.Sprintf("%s/%s/%s%s", BaseURL, kind, id, path.Ext(file.Filename)),
		PublicID: id,
	}
	h.uploads = append(h.uploads, up)

	return up, nil
}

// Destroy implements asset.Host.
func (h *Host) Destroy(_ context.Context, publicID string, kind asset.Kind) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.destroyed = append(h.destroyed, Destroyed{PublicID: publicID, Kind: kind})

	if h.DestroyErr != nil {
		return h.DestroyErr
	}

	if _, ok := h.objects[publicID]; !ok {
		return errors.Wrap(asset.ErrNotFoundOnRemote, publicID)
	}
	delete(h.objects, publicID)

	return nil
}

// Uploads returns every successful upload in order.
func (h *Host) Uploads() []asset.Uploaded {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]asset.Uploaded(nil), h.uploads...)
}

// Destroyed returns every Destroy call in order, failed ones included.
func (h *Host) Destroyed() []Destroyed {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]Destroyed(nil), h.destroyed...)
}

// Has reports whether publicID is currently stored.
func (h *Host) Has(publicID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.objects[publicID]

	return ok
}
