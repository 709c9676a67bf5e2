package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/folio-cms/folio/internal/asset"
)

// FormFile opens the multipart part field. A missing or empty part gives a nil
// file. The returned func closes the part and is always safe to call.
func FormFile(c *fiber.Ctx, field string) (*asset.File, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil || header.Size == 0 {
		return nil, noop, nil //nolint:nilerr // an absent part is not an error
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, errors.Wrapf(err, "failed to open upload %s", field)
	}

	return &asset.File{Filename: header.Filename, Content: f}, func() { _ = f.Close() }, nil
}
