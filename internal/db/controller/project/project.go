// Package project provides CRUD operations for portfolio projects.
package project

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/models"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectIDEmpty is returned when a project is looked up without an id.
	ErrProjectIDEmpty = errors.New("project id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all projects in insertion order.
func GetAll(db *gorm.DB) ([]models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var projects []models.Project
	result := db.Order("created_at").Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}

	return projects, nil
}

// Get retrieves a project by its id.
func Get(db *gorm.DB, id string) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if id == "" {
		return nil, ErrProjectIDEmpty
	}

	var p models.Project
	result := db.Where("id = ?", id).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// Create inserts p, assigning an id and creation time when unset.
func Create(db *gorm.DB, p *models.Project) error {
	if db == nil {
		return ErrDBNil
	}

	if p.ID == "" {
		p.ID = models.NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	return db.Create(p).Error
}

// Delete deletes a project by id.
func Delete(db *gorm.DB, id string) error {
	if db == nil {
		return ErrDBNil
	}
	if id == "" {
		return ErrProjectIDEmpty
	}

	result := db.Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}
