package content

import (
	"github.com/pkg/errors"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/db"
)

var (
	// ErrValidation is returned when a required field is missing.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an operation names an unknown document.
	ErrNotFound = db.ErrNotFound
	// ErrUpload is returned when the media host rejected a file. Nothing was
	// persisted when it is returned.
	ErrUpload = asset.ErrUpload
)
