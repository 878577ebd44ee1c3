package repository

import (
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.Preload("Faculty").First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByCode(code string) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("UPPER(code) = UPPER(?)", code).
		Preload("Faculty").
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

func (r *CourseRepository) ListByFaculty(facultyID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("faculty_id = ?", facultyID).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListEnrolled(userID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Joins("JOIN course_enrollments ON course_enrollments.course_id = courses.id").
		Where("course_enrollments.user_id = ?", userID).
		Preload("Faculty").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Enroll(courseID, userID uint) error {
	enrollment := models.CourseEnrollment{
		CourseID: courseID,
		UserID:   userID,
	}
	return r.db.Create(&enrollment).Error
}

func (r *CourseRepository) IsEnrolled(courseID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CourseEnrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ListEnrollments(courseID uint) ([]models.CourseEnrollment, error) {
	var enrollments []models.CourseEnrollment
	err := r.db.Preload("User").
		Where("course_id = ?", courseID).
		Find(&enrollments).Error
	return enrollments, err
}
