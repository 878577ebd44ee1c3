package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectRole string

const (
	ProjectRoleLeader ProjectRole = "leader"
	ProjectRoleMember ProjectRole = "member"
)

type Project struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	CourseID    uint   `gorm:"not null;index" json:"course_id"`
	CreatorID   uint   `gorm:"not null" json:"creator_id"`

	Creator User            `gorm:"foreignKey:CreatorID" json:"creator"`
	Course  Course          `gorm:"foreignKey:CourseID" json:"-"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members"`
}

// ProjectMember doubles as the cumulative contribution record: one row per
// (project, user), counters incremented on every tracked edit activity.
type ProjectMember struct {
	ProjectID uint        `gorm:"primaryKey" json:"project_id"`
	UserID    uint        `gorm:"primaryKey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);default:'member'" json:"role"`
	JoinedAt  time.Time   `gorm:"autoCreateTime" json:"joined_at"`

	EditCount    int        `gorm:"not null;default:0" json:"edit_count"`
	CharsAdded   int        `gorm:"not null;default:0" json:"chars_added"`
	CharsRemoved int        `gorm:"not null;default:0" json:"chars_removed"`
	LastActiveAt *time.Time `json:"last_active_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
