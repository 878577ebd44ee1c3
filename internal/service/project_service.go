package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
)

var (
	ErrNotProjectMember = errors.New("not a project member")
	ErrAlreadyMember    = errors.New("user is already a member of this project")
	ErrInviteExpired    = errors.New("invite expired")
	ErrInviteExhausted  = errors.New("invite exhausted")
	ErrInviteRevoked    = errors.New("invite revoked")
)

type ProjectService struct {
	projectRepo repository.ProjectRepositoryInterface
	courseRepo  repository.CourseRepositoryInterface
	inviteRepo  repository.ProjectInviteRepositoryInterface
}

func NewProjectService(
	projectRepo repository.ProjectRepositoryInterface,
	courseRepo repository.CourseRepositoryInterface,
	inviteRepo repository.ProjectInviteRepositoryInterface,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		courseRepo:  courseRepo,
		inviteRepo:  inviteRepo,
	}
}

type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CourseID    uint   `json:"course_id"`
}

// CreateProject creates a team project inside a course. The creator must be
// enrolled and becomes the team leader.
func (s *ProjectService) CreateProject(creatorID uint, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("project name is required")
	}

	course, err := s.courseRepo.FindByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course.IsArchived {
		return nil, ErrCourseArchived
	}
	if course.FacultyID != creatorID {
		enrolled, err := s.courseRepo.IsEnrolled(course.ID, creatorID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, errors.New("must be enrolled in the course")
		}
	}

	project := &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CourseID:    input.CourseID,
		CreatorID:   creatorID,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.AddMember(project.ID, creatorID, models.ProjectRoleLeader); err != nil {
		return nil, err
	}

	return s.projectRepo.FindByID(project.ID)
}

func (s *ProjectService) GetProject(id uint) (*models.Project, error) {
	return s.projectRepo.FindByID(id)
}

func (s *ProjectService) ListByCourse(courseID uint) ([]models.Project, error) {
	return s.projectRepo.ListByCourse(courseID)
}

func (s *ProjectService) ListMyProjects(userID uint) ([]models.Project, error) {
	return s.projectRepo.ListByUser(userID)
}

func (s *ProjectService) LeaveProject(projectID, userID uint) error {
	return s.projectRepo.RemoveMember(projectID, userID)
}

func (s *ProjectService) IsMember(projectID, userID uint) (bool, error) {
	return s.projectRepo.IsMember(projectID, userID)
}

func (s *ProjectService) IsLeader(projectID, userID uint) (bool, error) {
	role, err := s.projectRepo.GetMemberRole(projectID, userID)
	if err != nil {
		return false, err
	}
	return role == models.ProjectRoleLeader, nil
}

func (s *ProjectService) GetMemberIDs(projectID uint) ([]uint, error) {
	return s.projectRepo.GetMemberIDs(projectID)
}

// CanView reports whether a user may read project data: members always,
// plus the owning course's faculty.
func (s *ProjectService) CanView(projectID, userID uint) (bool, error) {
	isMember, err := s.projectRepo.IsMember(projectID, userID)
	if err != nil {
		return false, err
	}
	if isMember {
		return true, nil
	}
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return false, err
	}
	course, err := s.courseRepo.FindByID(project.CourseID)
	if err != nil {
		return false, err
	}
	return course.FacultyID == userID, nil
}

// CreateInvite issues a join token for a project. Only the leader can invite.
func (s *ProjectService) CreateInvite(projectID, creatorID uint, singleUse bool, expiresAt *time.Time) (*models.ProjectInvite, error) {
	isLeader, err := s.IsLeader(projectID, creatorID)
	if err != nil {
		return nil, err
	}
	if !isLeader {
		return nil, errors.New("forbidden")
	}

	maxUses := (*int)(nil)
	if singleUse {
		v := 1
		maxUses = &v
	}

	invite := &models.ProjectInvite{
		ProjectID: projectID,
		Token:     generateInviteToken(),
		CreatedBy: creatorID,
		ExpiresAt: expiresAt,
		MaxUses:   maxUses,
		UsedCount: 0,
	}
	if err := s.inviteRepo.Create(invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// JoinByInvite adds the user to the invite's project. The joiner must be
// enrolled in the owning course.
func (s *ProjectService) JoinByInvite(token string, userID uint) (*models.Project, error) {
	invite, err := s.validInvite(token)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(invite.ProjectID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.courseRepo.IsEnrolled(project.CourseID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, errors.New("must be enrolled in the course")
	}

	isMember, err := s.projectRepo.IsMember(project.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.projectRepo.AddMember(project.ID, userID, models.ProjectRoleMember); err != nil {
		return nil, err
	}
	if err := s.inviteRepo.IncrementUse(invite.ID); err != nil {
		return nil, err
	}
	return project, nil
}

// GetInvitePreview resolves a token to its project without joining.
func (s *ProjectService) GetInvitePreview(token string) (*models.ProjectInvite, *models.Project, error) {
	invite, err := s.validInvite(token)
	if err != nil {
		return nil, nil, err
	}
	project, err := s.projectRepo.FindByID(invite.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return invite, project, nil
}

func (s *ProjectService) validInvite(token string) (*models.ProjectInvite, error) {
	invite, err := s.inviteRepo.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if invite.RevokedAt != nil {
		return nil, ErrInviteRevoked
	}
	if invite.ExpiresAt != nil && time.Now().After(*invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}
	if invite.MaxUses != nil && invite.UsedCount >= *invite.MaxUses {
		return nil, ErrInviteExhausted
	}
	return invite, nil
}

func generateInviteToken() string {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().String()))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
