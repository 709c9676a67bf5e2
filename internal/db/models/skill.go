package models

import "time"

// Skill is a named skill shown with an icon class, e.g. "fa-brands fa-golang".
type Skill struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id"`
	Name      string    `gorm:"size:100;not null" bson:"name"`
	Icon      string    `gorm:"size:100;not null" bson:"icon"`
	CreatedAt time.Time `bson:"created_at"`
}
