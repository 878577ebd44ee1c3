package models

import "time"

// ContributionSnapshot is the per-day activity bucket for one project member.
// Exactly one row exists per (project, user, day); day is truncated to
// server-local midnight. Counters only ever increase.
type ContributionSnapshot struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_snapshot_day,priority:1" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_snapshot_day,priority:2" json:"user_id"`
	Day       time.Time `gorm:"not null;uniqueIndex:idx_snapshot_day,priority:3" json:"day"`

	DocumentsEdited int `gorm:"not null;default:0" json:"documents_edited"`
	CharsAdded      int `gorm:"not null;default:0" json:"chars_added"`
	ChatMessages    int `gorm:"not null;default:0" json:"chat_messages"`
	TasksCompleted  int `gorm:"not null;default:0" json:"tasks_completed"`
}

// MemberContribution is the per-member attribution row returned by the
// breakdown view. Percentages are independently rounded and may not sum
// to exactly 100.
type MemberContribution struct {
	User                   UserResponse `json:"user"`
	Role                   ProjectRole  `json:"role"`
	EditCount              int          `json:"edit_count"`
	CharsAdded             int          `json:"chars_added"`
	CharsRemoved           int          `json:"chars_removed"`
	LastActiveAt           *time.Time   `json:"last_active_at"`
	ContributionPercentage int          `json:"contribution_percentage"`
	CharacterPercentage    int          `json:"character_percentage"`
}
