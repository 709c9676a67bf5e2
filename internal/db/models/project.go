package models

import "time"

// Project is a portfolio entry with an image on the media host.
type Project struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id"`
	Title       string    `gorm:"size:255;not null" bson:"title"`
	Description string    `gorm:"type:text" bson:"description"`
	ImageURL    string    `gorm:"size:1024" bson:"image_url"`
	CreatedAt   time.Time `bson:"created_at"`
}
