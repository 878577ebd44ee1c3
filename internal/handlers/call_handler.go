package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/call"
	"github.com/shubhamjanki/collabhub-backend/internal/realtime"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
)

type CallHandler struct {
	registry       *call.Registry
	tokens         *call.TokenIssuer
	projectService *service.ProjectService
	userService    *service.UserService
	hub            *realtime.Hub
}

func NewCallHandler(
	registry *call.Registry,
	tokens *call.TokenIssuer,
	projectService *service.ProjectService,
	userService *service.UserService,
	hub *realtime.Hub,
) *CallHandler {
	return &CallHandler{
		registry:       registry,
		tokens:         tokens,
		projectService: projectService,
		userService:    userService,
		hub:            hub,
	}
}

type JoinCallRequest struct {
	PeerID string `json:"peer_id"`
}

// Join registers the caller as a call participant and hands back a room
// token for the conferencing provider.
func (h *CallHandler) Join(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var req JoinCallRequest
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

	user, err := h.userService.GetUser(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	displayName := user.FullName
	if displayName == "" {
		displayName = user.Username
	}

	h.registry.Add(uint(projectID), userID, displayName, req.PeerID)
	h.broadcastPresence(uint(projectID))

	var token string
	if h.tokens != nil {
		token, err = h.tokens.Issue(uint(projectID), userID, displayName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to issue room token"})
		}
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"participants": h.registry.List(uint(projectID)),
	})
}

type HeartbeatRequest struct {
	UserName string `json:"user_name"`
	PeerID   string `json:"peer_id"`
}

// Heartbeat refreshes a participant's name/peer id. It never creates an
// entry: a heartbeat after leave (or from a user who never joined) is a no-op.
func (h *CallHandler) Heartbeat(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var req HeartbeatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID := c.Locals("userID").(uint)
	h.registry.Touch(uint(projectID), userID, req.UserName, req.PeerID)
	return c.JSON(fiber.Map{"success": true})
}

func (h *CallHandler) Leave(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	userID := c.Locals("userID").(uint)
	h.registry.Remove(uint(projectID), userID)
	h.broadcastPresence(uint(projectID))
	return c.JSON(fiber.Map{"success": true})
}

func (h *CallHandler) GetParticipants(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(uint(projectID), userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	return c.JSON(fiber.Map{"participants": h.registry.List(uint(projectID))})
}

func (h *CallHandler) broadcastPresence(projectID uint) {
	if h.hub == nil {
		return
	}
	memberIDs, err := h.projectService.GetMemberIDs(projectID)
	if err != nil {
		return
	}
	h.hub.BroadcastToUsers(memberIDs, realtime.Event{
		Type:      realtime.EventCallParticipant,
		ProjectID: projectID,
		Payload:   h.registry.List(projectID),
	})
}
