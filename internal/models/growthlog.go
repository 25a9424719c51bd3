package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo processing states.
const (
	PhotoStatusQueued = "queued"
	PhotoStatusReady  = "ready"
	PhotoStatusFailed = "failed"
)

// GrowthLog is a dated milestone entry for a pet, optionally carrying a photo.
type GrowthLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PetID       uint           `gorm:"not null;index" json:"pet_id"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	Description string         `gorm:"type:text" json:"description"`
	PhotoHash   string         `gorm:"index" json:"photo_hash,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Photo is a stored, hash-addressed master image. Resized WebP variants are
// produced asynchronously by the photo worker; until then Status is queued and
// the master file serves all sizes.
type Photo struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Hash       string         `gorm:"uniqueIndex;not null" json:"hash"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	MimeType   string         `json:"mime_type"`
	SizeBytes  int64          `json:"size_bytes"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	MasterPath string         `json:"-"`
	Status     string         `gorm:"default:queued;index" json:"status"`
	Attempts   int            `json:"-"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Variants   []PhotoVariant `gorm:"foreignKey:PhotoID" json:"variants,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// PhotoVariant is one resized rendition of a Photo.
type PhotoVariant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PhotoID   uint      `gorm:"not null;index" json:"-"`
	Size      int       `gorm:"not null" json:"size"` // longest edge in pixels
	Format    string    `gorm:"not null" json:"format"`
	Path      string    `json:"-"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}
