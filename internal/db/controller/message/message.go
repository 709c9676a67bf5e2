// Package message stores the notes visitors send through the contact form.
package message

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/models"
)

var (
	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = errors.New("message not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all messages, newest first.
func GetAll(db *gorm.DB) ([]models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var messages []models.Message
	result := db.Order("submitted_at desc").Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

// Create inserts m, stamping it with the current time when unset.
func Create(db *gorm.DB, m *models.Message) error {
	if db == nil {
		return ErrDBNil
	}

	if m.ID == "" {
		m.ID = models.NewID()
	}
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now().UTC()
	}

	return db.Create(m).Error
}

// Delete deletes a message by id.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
