package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type memberKey struct {
	projectID uint
	userID    uint
}

// MockProjectRepository is an in-memory project store for service tests.
type MockProjectRepository struct {
	projects map[uint]*models.Project
	members  map[memberKey]models.ProjectRole
	nextID   uint
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		projects: make(map[uint]*models.Project),
		members:  make(map[memberKey]models.ProjectRole),
		nextID:   1,
	}
}

func (m *MockProjectRepository) Create(project *models.Project) error {
	project.ID = m.nextID
	m.nextID++
	m.projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) FindByID(id uint) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *MockProjectRepository) Update(project *models.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) ListByCourse(courseID uint) ([]models.Project, error) {
	var out []models.Project
	for _, p := range m.projects {
		if p.CourseID == courseID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *MockProjectRepository) ListByUser(userID uint) ([]models.Project, error) {
	var out []models.Project
	for key := range m.members {
		if key.userID == userID {
			if p, ok := m.projects[key.projectID]; ok {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (m *MockProjectRepository) AddMember(projectID, userID uint, role models.ProjectRole) error {
	m.members[memberKey{projectID, userID}] = role
	return nil
}

func (m *MockProjectRepository) RemoveMember(projectID, userID uint) error {
	delete(m.members, memberKey{projectID, userID})
	return nil
}

func (m *MockProjectRepository) IsMember(projectID, userID uint) (bool, error) {
	_, ok := m.members[memberKey{projectID, userID}]
	return ok, nil
}

func (m *MockProjectRepository) GetMemberRole(projectID, userID uint) (models.ProjectRole, error) {
	role, ok := m.members[memberKey{projectID, userID}]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (m *MockProjectRepository) GetMemberIDs(projectID uint) ([]uint, error) {
	var ids []uint
	for key := range m.members {
		if key.projectID == projectID {
			ids = append(ids, key.userID)
		}
	}
	return ids, nil
}

// MockCourseRepository backs enrollment checks for project tests.
type MockCourseRepository struct {
	courses     map[uint]*models.Course
	enrollments map[memberKey]bool
	nextID      uint
}

func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{
		courses:     make(map[uint]*models.Course),
		enrollments: make(map[memberKey]bool),
		nextID:      1,
	}
}

func (m *MockCourseRepository) Create(course *models.Course) error {
	course.ID = m.nextID
	m.nextID++
	m.courses[course.ID] = course
	return nil
}

func (m *MockCourseRepository) FindByID(id uint) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *MockCourseRepository) FindByCode(code string) (*models.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCourseRepository) Update(course *models.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *MockCourseRepository) ListByFaculty(facultyID uint) ([]models.Course, error) {
	var out []models.Course
	for _, c := range m.courses {
		if c.FacultyID == facultyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockCourseRepository) ListEnrolled(userID uint) ([]models.Course, error) {
	var out []models.Course
	for key := range m.enrollments {
		if key.userID == userID {
			if c, ok := m.courses[key.projectID]; ok {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (m *MockCourseRepository) Enroll(courseID, userID uint) error {
	m.enrollments[memberKey{courseID, userID}] = true
	return nil
}

func (m *MockCourseRepository) IsEnrolled(courseID, userID uint) (bool, error) {
	return m.enrollments[memberKey{courseID, userID}], nil
}

func (m *MockCourseRepository) ListEnrollments(courseID uint) ([]models.CourseEnrollment, error) {
	var out []models.CourseEnrollment
	for key := range m.enrollments {
		if key.projectID == courseID {
			out = append(out, models.CourseEnrollment{CourseID: courseID, UserID: key.userID})
		}
	}
	return out, nil
}

// MockProjectInviteRepository stores invites by token.
type MockProjectInviteRepository struct {
	invites map[string]*models.ProjectInvite
	nextID  uint
}

func NewMockProjectInviteRepository() *MockProjectInviteRepository {
	return &MockProjectInviteRepository{
		invites: make(map[string]*models.ProjectInvite),
		nextID:  1,
	}
}

func (m *MockProjectInviteRepository) Create(invite *models.ProjectInvite) error {
	invite.ID = m.nextID
	m.nextID++
	m.invites[invite.Token] = invite
	return nil
}

func (m *MockProjectInviteRepository) FindByToken(token string) (*models.ProjectInvite, error) {
	inv, ok := m.invites[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (m *MockProjectInviteRepository) IncrementUse(id uint) error {
	for _, inv := range m.invites {
		if inv.ID == id {
			inv.UsedCount++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *MockProjectInviteRepository) Revoke(id uint, revokedAt time.Time) error {
	for _, inv := range m.invites {
		if inv.ID == id {
			inv.RevokedAt = &revokedAt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newProjectServiceFixture() (*ProjectService, *MockProjectRepository, *MockCourseRepository, *MockProjectInviteRepository) {
	projectRepo := NewMockProjectRepository()
	courseRepo := NewMockCourseRepository()
	inviteRepo := NewMockProjectInviteRepository()
	svc := NewProjectService(projectRepo, courseRepo, inviteRepo)
	return svc, projectRepo, courseRepo, inviteRepo
}

func seedCourse(courseRepo *MockCourseRepository, facultyID uint) *models.Course {
	course := &models.Course{Title: "Distributed Systems", Code: "DS2026", FacultyID: facultyID}
	courseRepo.Create(course)
	return course
}

func TestCreateProjectMakesCreatorLeader(t *testing.T) {
	svc, projectRepo, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)

	project, err := svc.CreateProject(5, CreateProjectInput{Name: "Raft Visualizer", CourseID: course.ID})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	role, err := projectRepo.GetMemberRole(project.ID, 5)
	if err != nil {
		t.Fatalf("GetMemberRole: %v", err)
	}
	if role != models.ProjectRoleLeader {
		t.Errorf("creator role = %q, want leader", role)
	}
}

func TestCreateProjectRequiresEnrollment(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)

	if _, err := svc.CreateProject(5, CreateProjectInput{Name: "Rogue Project", CourseID: course.ID}); err == nil {
		t.Fatal("expected error for unenrolled creator")
	}
}

func TestCreateProjectRejectsArchivedCourse(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	course.IsArchived = true
	courseRepo.Enroll(course.ID, 5)

	if _, err := svc.CreateProject(5, CreateProjectInput{Name: "Too Late", CourseID: course.ID}); !errors.Is(err, ErrCourseArchived) {
		t.Fatalf("err = %v, want ErrCourseArchived", err)
	}
}

func TestCreateInviteLeaderOnly(t *testing.T) {
	svc, projectRepo, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	project, err := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	projectRepo.AddMember(project.ID, 6, models.ProjectRoleMember)

	if _, err := svc.CreateInvite(project.ID, 6, false, nil); err == nil {
		t.Error("expected error for non-leader invite")
	}
	invite, err := svc.CreateInvite(project.ID, 5, false, nil)
	if err != nil {
		t.Fatalf("leader CreateInvite: %v", err)
	}
	if invite.Token == "" {
		t.Error("invite token should not be empty")
	}
}

func TestJoinByInviteRequiresEnrollment(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	project, _ := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})
	invite, _ := svc.CreateInvite(project.ID, 5, false, nil)

	if _, err := svc.JoinByInvite(invite.Token, 7); err == nil {
		t.Fatal("expected error when joiner is not enrolled")
	}

	courseRepo.Enroll(course.ID, 7)
	joined, err := svc.JoinByInvite(invite.Token, 7)
	if err != nil {
		t.Fatalf("JoinByInvite after enrolling: %v", err)
	}
	if joined.ID != project.ID {
		t.Errorf("joined project %d, want %d", joined.ID, project.ID)
	}
}

func TestJoinByInviteRejectsExistingMember(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	project, _ := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})
	invite, _ := svc.CreateInvite(project.ID, 5, false, nil)

	if _, err := svc.JoinByInvite(invite.Token, 5); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("err = %v, want ErrAlreadyMember", err)
	}
}

func TestJoinByInviteExpired(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	courseRepo.Enroll(course.ID, 7)
	project, _ := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})

	past := time.Now().Add(-time.Hour)
	invite, err := svc.CreateInvite(project.ID, 5, false, &past)
	if err != nil {
		t.Fatalf("CreateInvite: %v", err)
	}

	if _, err := svc.JoinByInvite(invite.Token, 7); !errors.Is(err, ErrInviteExpired) {
		t.Fatalf("err = %v, want ErrInviteExpired", err)
	}
}

func TestJoinByInviteSingleUseExhausts(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	courseRepo.Enroll(course.ID, 7)
	courseRepo.Enroll(course.ID, 8)
	project, _ := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})

	invite, err := svc.CreateInvite(project.ID, 5, true, nil)
	if err != nil {
		t.Fatalf("CreateInvite: %v", err)
	}

	if _, err := svc.JoinByInvite(invite.Token, 7); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.JoinByInvite(invite.Token, 8); !errors.Is(err, ErrInviteExhausted) {
		t.Fatalf("err = %v, want ErrInviteExhausted", err)
	}
}

func TestJoinByInviteRevoked(t *testing.T) {
	svc, _, courseRepo, inviteRepo := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	courseRepo.Enroll(course.ID, 7)
	project, _ := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})
	invite, _ := svc.CreateInvite(project.ID, 5, false, nil)
	inviteRepo.Revoke(invite.ID, time.Now())

	if _, err := svc.JoinByInvite(invite.Token, 7); !errors.Is(err, ErrInviteRevoked) {
		t.Fatalf("err = %v, want ErrInviteRevoked", err)
	}
}

func TestCanViewGrantsFacultyAccess(t *testing.T) {
	svc, _, courseRepo, _ := newProjectServiceFixture()
	course := seedCourse(courseRepo, 99)
	courseRepo.Enroll(course.ID, 5)
	project, _ := svc.CreateProject(5, CreateProjectInput{Name: "Team Alpha", CourseID: course.ID})

	cases := []struct {
		name   string
		userID uint
		want   bool
	}{
		{"member", 5, true},
		{"course faculty", 99, true},
		{"stranger", 42, false},
	}
	for _, tc := range cases {
		got, err := svc.CanView(project.ID, tc.userID)
		if err != nil {
			t.Fatalf("%s: CanView: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
}
