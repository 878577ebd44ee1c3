package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID   uint   `gorm:"not null;index" json:"project_id"`
	UploaderID  uint   `gorm:"not null" json:"uploader_id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	ObjectKey   string `gorm:"uniqueIndex;not null" json:"-"`
	ContentType string `gorm:"size:100" json:"content_type"`
	Size        int64  `json:"size"`

	Uploader User `gorm:"foreignKey:UploaderID" json:"uploader"`
}

// DocumentShareLink maps a random token to a document so people outside the
// project can fetch it through a presigned URL.
type DocumentShareLink struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	DocumentID uint       `gorm:"not null;index" json:"document_id"`
	Token      string     `gorm:"uniqueIndex;not null" json:"token"`
	CreatedBy  uint       `gorm:"not null" json:"created_by"`
	ExpiresAt  *time.Time `json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}
