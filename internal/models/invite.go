package models

import "time"

// ProjectInvite is a shareable join code for a project team.
type ProjectInvite struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	ProjectID uint       `gorm:"not null;index" json:"project_id"`
	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	ExpiresAt *time.Time `json:"expires_at"`
	MaxUses   *int       `json:"max_uses"`
	UsedCount int        `gorm:"default:0" json:"used_count"`
	RevokedAt *time.Time `json:"revoked_at"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
