package repository

import (
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	TouchLastSeen(userID uint, at time.Time) error
	SearchUsers(query string, limit int) ([]models.User, error)
}

// CourseRepositoryInterface defines the contract for course repository operations
type CourseRepositoryInterface interface {
	Create(course *models.Course) error
	FindByID(id uint) (*models.Course, error)
	FindByCode(code string) (*models.Course, error)
	Update(course *models.Course) error
	ListByFaculty(facultyID uint) ([]models.Course, error)
	ListEnrolled(userID uint) ([]models.Course, error)
	Enroll(courseID, userID uint) error
	IsEnrolled(courseID, userID uint) (bool, error)
	ListEnrollments(courseID uint) ([]models.CourseEnrollment, error)
}

// ProjectRepositoryInterface defines the contract for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	FindByID(id uint) (*models.Project, error)
	Update(project *models.Project) error
	ListByCourse(courseID uint) ([]models.Project, error)
	ListByUser(userID uint) ([]models.Project, error)
	AddMember(projectID, userID uint, role models.ProjectRole) error
	RemoveMember(projectID, userID uint) error
	IsMember(projectID, userID uint) (bool, error)
	GetMemberRole(projectID, userID uint) (models.ProjectRole, error)
	GetMemberIDs(projectID uint) ([]uint, error)
}

// ContributionRepositoryInterface defines the contract for the contribution
// tracker's storage collaborator. Both Apply methods must provide atomic
// increment-or-seed semantics on their composite key.
type ContributionRepositoryInterface interface {
	ApplyMemberActivity(projectID, userID uint, edits, charsAdded, charsRemoved int) error
	ApplySnapshotActivity(projectID, userID uint, day time.Time, docsEdited, charsAdded, chatMessages, tasksCompleted int) error
	ListMembers(projectID uint) ([]models.ProjectMember, error)
	ListSnapshotsSince(projectID, userID uint, since time.Time) ([]models.ContributionSnapshot, error)
}

// ChatMessageRepositoryInterface defines the contract for chat message operations
type ChatMessageRepositoryInterface interface {
	Create(message *models.ChatMessage) error
	FindByID(id uint) (*models.ChatMessage, error)
	FindProjectMessages(projectID uint, cursor uint, limit int) ([]models.ChatMessage, error)
}

// DocumentRepositoryInterface defines the contract for document metadata operations
type DocumentRepositoryInterface interface {
	Create(doc *models.Document) error
	FindByID(id uint) (*models.Document, error)
	Update(doc *models.Document) error
	Delete(id uint) error
	ListByProject(projectID uint) ([]models.Document, error)
	CreateShareLink(link *models.DocumentShareLink) error
	FindShareLinkByToken(token string) (*models.DocumentShareLink, error)
	RevokeShareLink(id uint, revokedAt time.Time) error
}

// TaskRepositoryInterface defines the contract for task operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	FindByID(id uint) (*models.Task, error)
	Update(task *models.Task) error
	Delete(id uint) error
	ListByProject(projectID uint) ([]models.Task, error)
}

// RubricRepositoryInterface defines the contract for rubric operations
type RubricRepositoryInterface interface {
	Create(rubric *models.Rubric) error
	FindByID(id uint) (*models.Rubric, error)
	ListByCourse(courseID uint) ([]models.Rubric, error)
	Delete(id uint) error
}

// EvaluationRepositoryInterface defines the contract for evaluation operations
type EvaluationRepositoryInterface interface {
	Upsert(eval *models.Evaluation) error
	FindByID(id uint) (*models.Evaluation, error)
	ListByProject(projectID uint) ([]models.Evaluation, error)
}

// ProjectInviteRepositoryInterface defines the contract for project invite operations
type ProjectInviteRepositoryInterface interface {
	Create(invite *models.ProjectInvite) error
	FindByToken(token string) (*models.ProjectInvite, error)
	IncrementUse(id uint) error
	Revoke(id uint, revokedAt time.Time) error
}
