package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
	"gorm.io/gorm"
)

type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	projectService    *service.ProjectService
}

func NewEvaluationHandler(evaluationService *service.EvaluationService, projectService *service.ProjectService) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: evaluationService,
		projectService:    projectService,
	}
}

func (h *EvaluationHandler) CreateRubric(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	var input service.CreateRubricInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("userID").(uint)
	rubric, err := h.evaluationService.CreateRubric(uint(courseID), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		case errors.Is(err, service.ErrNotCourseOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(rubric)
}

func (h *EvaluationHandler) GetCourseRubrics(c *fiber.Ctx) error {
	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	rubrics, err := h.evaluationService.ListRubrics(uint(courseID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch rubrics"})
	}
	return c.JSON(fiber.Map{"rubrics": rubrics})
}

func (h *EvaluationHandler) EvaluateProject(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var input service.EvaluateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("userID").(uint)
	eval, err := h.evaluationService.Evaluate(uint(projectID), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project or rubric not found"})
		case errors.Is(err, service.ErrNotCourseOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(eval)
}

func (h *EvaluationHandler) GetProjectEvaluations(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(uint(projectID), userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	evals, err := h.evaluationService.ListByProject(uint(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch evaluations"})
	}
	return c.JSON(fiber.Map{"evaluations": evals})
}
