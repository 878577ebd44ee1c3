package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed_password_123",
		FullName:     "Test User",
		Role:         models.UserRoleStudent,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestFaculty creates a test user with the faculty role
func (h *TestHelper) CreateTestFaculty(id uint, username, email string) *models.User {
	u := h.CreateTestUser(id, username, email)
	u.Role = models.UserRoleFaculty
	return u
}

// CreateTestCourse creates a test course with default values
func (h *TestHelper) CreateTestCourse(id, facultyID uint, code string) *models.Course {
	if id == 0 {
		id = 1
	}
	if facultyID == 0 {
		facultyID = 1
	}
	if code == "" {
		code = "ABC234"
	}

	return &models.Course{
		ID:        id,
		Title:     "Test Course",
		Code:      code,
		FacultyID: facultyID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestProject creates a test project with default values
func (h *TestHelper) CreateTestProject(id, courseID, creatorID uint) *models.Project {
	if id == 0 {
		id = 1
	}
	if courseID == 0 {
		courseID = 1
	}
	if creatorID == 0 {
		creatorID = 1
	}

	return &models.Project{
		ID:        id,
		Name:      "Test Project",
		CourseID:  courseID,
		CreatorID: creatorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestTask creates a test task with default values
func (h *TestHelper) CreateTestTask(id, projectID uint, status models.TaskStatus) *models.Task {
	if id == 0 {
		id = 1
	}
	if projectID == 0 {
		projectID = 1
	}
	if status == "" {
		status = models.TaskStatusTodo
	}

	return &models.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     "Test task",
		Status:    status,
		CreatedBy: 1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// GetRecordNotFoundError returns the gorm not-found error for mocks
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}
