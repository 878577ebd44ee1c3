package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
	"github.com/shubhamjanki/collabhub-backend/internal/validation"
)

type ContributionHandler struct {
	contributionService *service.ContributionService
	projectService      *service.ProjectService
}

func NewContributionHandler(contributionService *service.ContributionService, projectService *service.ProjectService) *ContributionHandler {
	return &ContributionHandler{
		contributionService: contributionService,
		projectService:      projectService,
	}
}

type TrackActivityRequest struct {
	ActivityType string `json:"activity_type"`
	CharsAdded   int    `json:"chars_added"`
	CharsRemoved int    `json:"chars_removed"`
}

// TrackActivity lets collaborative editor clients report activity directly.
// Chat and task activity is normally tracked server-side when the action
// happens; this endpoint exists for edit events from the document editor.
func (h *ContributionHandler) TrackActivity(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var req TrackActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("userID").(uint)
	isMember, err := h.projectService.IsMember(uint(projectID), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check membership"})
	}
	if !isMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	delta := &service.EditDelta{
		CharsAdded:   validation.ClampNonNegative(req.CharsAdded),
		CharsRemoved: validation.ClampNonNegative(req.CharsRemoved),
	}
	if err := h.contributionService.TrackContribution(userID, uint(projectID), service.ActivityType(req.ActivityType), delta); err != nil {
		if err == service.ErrUnknownActivity {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to track activity"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetBreakdown renders the attribution view for a project.
func (h *ContributionHandler) GetBreakdown(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(uint(projectID), userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	breakdown, err := h.contributionService.GetContributionBreakdown(uint(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute breakdown"})
	}
	return c.JSON(fiber.Map{"contributions": breakdown})
}

// GetHistory returns one member's daily activity series.
func (h *ContributionHandler) GetHistory(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}
	memberID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	days, _ := strconv.Atoi(c.Query("days", "7"))

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(uint(projectID), userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	history, err := h.contributionService.GetContributionHistory(uint(projectID), uint(memberID), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
	}
	return c.JSON(fiber.Map{"history": history})
}
