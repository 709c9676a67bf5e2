// Package asset talks to the external media host that stores project images,
// profile media and the CV.
package asset

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Kind is the media host's resource type.
type Kind string

// Resource types.
const (
	KindImage Kind = "image"
	KindRaw   Kind = "raw"
)

var (
	// ErrUpload is returned when the media host did not accept a file.
	ErrUpload = errors.New("asset upload failed")
	// ErrNotFoundOnRemote is returned by Destroy when the host has no such object.
	// Callers treat it as success.
	ErrNotFoundOnRemote = errors.New("asset not found on remote")
)

// File is an upload waiting to be sent.
type File struct {
	Filename string
	Content  io.Reader
}

// Uploaded describes a stored object.
type Uploaded struct {
	URL      string
	PublicID string
}

// Host stores and removes binary objects.
type Host interface {
	Upload(ctx context.Context, file *File, kind Kind) (Uploaded, error)
	Destroy(ctx context.Context, publicID string, kind Kind) error
}

// PublicID derives the host's object id from a URL: the last path segment up to
// its first dot. ".../folder/abcde123.pdf" gives "abcde123".
//
// The rule ignores folders and cuts names with several dots short, so
// "a/b/my.photo.png" gives "my". Hosts that store under a folder add it back
// themselves.
func PublicID(url string) string {
	last := url[strings.LastIndex(url, "/")+1:]

	if i := strings.Index(last, "."); i >= 0 {
		return last[:i]
	}

	return last
}
