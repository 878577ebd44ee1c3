package service

import (
	"crypto/rand"
	"errors"
	"strings"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
)

var (
	ErrNotFaculty      = errors.New("faculty role required")
	ErrNotCourseOwner  = errors.New("not the course owner")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrCourseArchived  = errors.New("course is archived")
)

type CourseService struct {
	courseRepo repository.CourseRepositoryInterface
	userRepo   repository.UserRepositoryInterface
}

func NewCourseService(courseRepo repository.CourseRepositoryInterface, userRepo repository.UserRepositoryInterface) *CourseService {
	return &CourseService{courseRepo: courseRepo, userRepo: userRepo}
}

type CreateCourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *CourseService) CreateCourse(facultyID uint, input CreateCourseInput) (*models.Course, error) {
	faculty, err := s.userRepo.FindByID(facultyID)
	if err != nil {
		return nil, err
	}
	if !faculty.IsFaculty() {
		return nil, ErrNotFaculty
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("course title is required")
	}

	course := &models.Course{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Code:        generateCourseCode(),
		FacultyID:   facultyID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	return s.courseRepo.FindByID(course.ID)
}

func (s *CourseService) GetCourse(id uint) (*models.Course, error) {
	return s.courseRepo.FindByID(id)
}

func (s *CourseService) ArchiveCourse(courseID, facultyID uint) error {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course.FacultyID != facultyID {
		return ErrNotCourseOwner
	}
	course.IsArchived = true
	return s.courseRepo.Update(course)
}

// EnrollByCode enrolls a student into the course carrying the given join code.
func (s *CourseService) EnrollByCode(code string, userID uint) (*models.Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.New("course code is required")
	}
	course, err := s.courseRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if course.IsArchived {
		return nil, ErrCourseArchived
	}

	enrolled, err := s.courseRepo.IsEnrolled(course.ID, userID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	if err := s.courseRepo.Enroll(course.ID, userID); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListMyCourses(userID uint) ([]models.Course, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.IsFaculty() {
		return s.courseRepo.ListByFaculty(userID)
	}
	return s.courseRepo.ListEnrolled(userID)
}

func (s *CourseService) ListEnrollments(courseID uint) ([]models.CourseEnrollment, error) {
	return s.courseRepo.ListEnrollments(courseID)
}

func (s *CourseService) IsEnrolled(courseID, userID uint) (bool, error) {
	return s.courseRepo.IsEnrolled(courseID, userID)
}

func (s *CourseService) IsCourseFaculty(courseID, userID uint) (bool, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return false, err
	}
	return course.FacultyID == userID, nil
}

// generateCourseCode builds a short human-typable join code.
func generateCourseCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "COURSE"
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}
