// Package skill provides CRUD operations for the skills list.
package skill

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/models"
)

var (
	// ErrSkillNotFound is returned when a skill is not found.
	ErrSkillNotFound = errors.New("skill not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all skills in insertion order.
func GetAll(db *gorm.DB) ([]models.Skill, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var skills []models.Skill
	result := db.Order("created_at").Find(&skills)
	if result.Error != nil {
		return nil, result.Error
	}

	return skills, nil
}

// Create inserts s, assigning an id and creation time when unset.
func Create(db *gorm.DB, s *models.Skill) error {
	if db == nil {
		return ErrDBNil
	}

	if s.ID == "" {
		s.ID = models.NewID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	return db.Create(s).Error
}

// Delete deletes a skill by id.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("id = ?", id).Delete(&models.Skill{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}

	return nil
}
