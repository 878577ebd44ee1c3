package repository

import (
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type ContributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// ApplyMemberActivity upserts the cumulative contribution record for
// (projectID, userID). A missing membership row is created with role 'member'
// and seeded from this event; an existing row is incremented in place. The
// increment happens inside the database so concurrent calls for the same key
// cannot lose updates.
func (r *ContributionRepository) ApplyMemberActivity(projectID, userID uint, edits, charsAdded, charsRemoved int) error {
	return r.db.Exec(`
		INSERT INTO project_members (project_id, user_id, role, joined_at, edit_count, chars_added, chars_removed, last_active_at)
		VALUES (?, ?, 'member', NOW(), ?, ?, ?, NOW())
		ON CONFLICT (project_id, user_id) DO UPDATE
		SET edit_count = project_members.edit_count + EXCLUDED.edit_count,
			chars_added = project_members.chars_added + EXCLUDED.chars_added,
			chars_removed = project_members.chars_removed + EXCLUDED.chars_removed,
			last_active_at = NOW()
	`, projectID, userID, edits, charsAdded, charsRemoved).Error
}

// ApplySnapshotActivity upserts the daily bucket for (projectID, userID, day).
// First activity of the day creates the row; later activity that day
// accumulates onto it.
func (r *ContributionRepository) ApplySnapshotActivity(projectID, userID uint, day time.Time, docsEdited, charsAdded, chatMessages, tasksCompleted int) error {
	return r.db.Exec(`
		INSERT INTO contribution_snapshots (project_id, user_id, day, documents_edited, chars_added, chat_messages, tasks_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id, user_id, day) DO UPDATE
		SET documents_edited = contribution_snapshots.documents_edited + EXCLUDED.documents_edited,
			chars_added = contribution_snapshots.chars_added + EXCLUDED.chars_added,
			chat_messages = contribution_snapshots.chat_messages + EXCLUDED.chat_messages,
			tasks_completed = contribution_snapshots.tasks_completed + EXCLUDED.tasks_completed
	`, projectID, userID, day, docsEdited, charsAdded, chatMessages, tasksCompleted).Error
}

// ListMembers returns all cumulative records for a project with the user
// profile loaded. Order is whatever the database returns.
func (r *ContributionRepository) ListMembers(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error
	return members, err
}

// ListSnapshotsSince returns daily buckets for one member from the given day
// onward, oldest first.
func (r *ContributionRepository) ListSnapshotsSince(projectID, userID uint, since time.Time) ([]models.ContributionSnapshot, error) {
	var snapshots []models.ContributionSnapshot
	err := r.db.Where("project_id = ? AND user_id = ? AND day >= ?", projectID, userID, since).
		Order("day ASC").
		Find(&snapshots).Error
	return snapshots, err
}
