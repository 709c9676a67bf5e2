// Package models contains the documents folio stores.
// The gorm tags serve the SQL backends, the bson tags the mongo backend.
package models

import "github.com/google/uuid"

// NewID returns a fresh document id.
func NewID() string {
	return uuid.NewString()
}
