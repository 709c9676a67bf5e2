package models

import "time"

// Names of the singleton settings. Each holds the URL of one asset on the media host.
const (
	SettingCVLink       = "cv_link"
	SettingProfileImage = "profile_image"
	SettingIllustration = "illustration"
)

// Setting is a named URL. There is at most one setting per name.
type Setting struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id"`
	Name      string    `gorm:"uniqueIndex;size:64;not null" bson:"name"`
	URL       string    `gorm:"size:1024" bson:"url"`
	UpdatedAt time.Time `bson:"updated_at"`
}
