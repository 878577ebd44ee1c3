package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/realtime"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
)

type ChatHandler struct {
	chatService    *service.ChatService
	projectService *service.ProjectService
	hub            *realtime.Hub
}

func NewChatHandler(chatService *service.ChatService, projectService *service.ProjectService, hub *realtime.Hub) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		projectService: projectService,
		hub:            hub,
	}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var req SendMessageRequest
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

	message, err := h.chatService.SendMessage(uint(projectID), userID, req.Content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Push to online project members; offline members fetch on next load.
	if h.hub != nil {
		if memberIDs, err := h.projectService.GetMemberIDs(uint(projectID)); err == nil {
			h.hub.BroadcastToUsers(memberIDs, realtime.Event{
				Type:      realtime.EventChatMessage,
				ProjectID: uint(projectID),
				Payload:   message,
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}
	cursor, _ := strconv.ParseUint(c.Query("cursor", "0"), 10, 32)
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(uint(projectID), userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	messages, err := h.chatService.GetMessages(uint(projectID), uint(cursor), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(fiber.Map{"messages": messages})
}
