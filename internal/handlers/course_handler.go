package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
	"gorm.io/gorm"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var input service.CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("userID").(uint)
	course, err := h.courseService.CreateCourse(userID, input)
	if err != nil {
		if errors.Is(err, service.ErrNotFaculty) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	course, err := h.courseService.GetCourse(uint(courseID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch course"})
	}
	return c.JSON(course)
}

func (h *CourseHandler) ArchiveCourse(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	userID := c.Locals("userID").(uint)
	if err := h.courseService.ArchiveCourse(uint(courseID), userID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		case errors.Is(err, service.ErrNotCourseOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to archive course"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

type EnrollRequest struct {
	Code string `json:"code"`
}

func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("userID").(uint)
	course, err := h.courseService.EnrollByCode(req.Code, userID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		case errors.Is(err, service.ErrAlreadyEnrolled), errors.Is(err, service.ErrCourseArchived):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll"})
		}
	}
	return c.JSON(course)
}

func (h *CourseHandler) GetMyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	courses, err := h.courseService.ListMyCourses(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}
	return c.JSON(courses)
}

func (h *CourseHandler) GetEnrollments(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	userID := c.Locals("userID").(uint)
	isFaculty, err := h.courseService.IsCourseFaculty(uint(courseID), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch course"})
	}
	if !isFaculty {
		enrolled, err := h.courseService.IsEnrolled(uint(courseID), userID)
		if err != nil || !enrolled {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not enrolled in this course"})
		}
	}

	enrollments, err := h.courseService.ListEnrollments(uint(courseID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}
	return c.JSON(enrollments)
}
