package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	// Code is the short join code students use to enroll.
	Code       string `gorm:"uniqueIndex;size:16;not null" json:"code"`
	FacultyID  uint   `gorm:"not null" json:"faculty_id"`
	IsArchived bool   `gorm:"default:false" json:"is_archived"`

	Faculty User `gorm:"foreignKey:FacultyID" json:"faculty"`
}

type CourseEnrollment struct {
	CourseID   uint      `gorm:"primaryKey" json:"course_id"`
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolled_at"`

	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}
