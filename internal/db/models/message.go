package models

import "time"

// Message is a note a visitor left through the contact form.
type Message struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id"`
	Name        string    `gorm:"size:255;not null" bson:"name"`
	Email       string    `gorm:"size:255;not null" bson:"email"`
	Text        string    `gorm:"type:text" bson:"text"`
	SubmittedAt time.Time `gorm:"index" bson:"submitted_at"`
}
