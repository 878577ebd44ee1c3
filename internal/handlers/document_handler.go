package handlers

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
	"gorm.io/gorm"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	projectService  *service.ProjectService
}

func NewDocumentHandler(documentService *service.DocumentService, projectService *service.ProjectService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		projectService:  projectService,
	}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	userID := c.Locals("userID").(uint)
	isMember, err := h.projectService.IsMember(uint(projectID), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check membership"})
	}
	if !isMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}
	title := c.FormValue("title", fileHeader.Filename)

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read file"})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.documentService.Upload(c.Context(), uint(projectID), userID, title, contentType, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage not available"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) ListProjectDocuments(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(uint(projectID), userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	docs, err := h.documentService.ListByProject(uint(projectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch documents"})
	}
	return c.JSON(fiber.Map{"documents": docs})
}

// SaveEdit replaces document content and reports the edit's character deltas.
func (h *DocumentHandler) SaveEdit(c *fiber.Ctx) error {
	docID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := h.documentService.GetDocument(uint(docID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch document"})
	}

	userID := c.Locals("userID").(uint)
	isMember, err := h.projectService.IsMember(doc.ProjectID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check membership"})
	}
	if !isMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	charsAdded, _ := strconv.Atoi(c.Query("chars_added", "0"))
	charsRemoved, _ := strconv.Atoi(c.Query("chars_removed", "0"))
	if charsAdded < 0 {
		charsAdded = 0
	}
	if charsRemoved < 0 {
		charsRemoved = 0
	}

	body := c.Body()
	updated, err := h.documentService.SaveEdit(c.Context(), uint(docID), userID, bytes.NewReader(body), int64(len(body)), service.SaveEditInput{
		CharsAdded:   charsAdded,
		CharsRemoved: charsRemoved,
	})
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage not available"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save document"})
	}
	return c.JSON(updated)
}

func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	docID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := h.documentService.GetDocument(uint(docID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch document"})
	}

	userID := c.Locals("userID").(uint)
	canView, err := h.projectService.CanView(doc.ProjectID, userID)
	if err != nil || !canView {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	url, err := h.documentService.Download(c.Context(), uint(docID))
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage not available"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate download URL"})
	}
	return c.JSON(fiber.Map{"url": url})
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	docID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := h.documentService.GetDocument(uint(docID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch document"})
	}

	userID := c.Locals("userID").(uint)
	if doc.UploaderID != userID {
		isLeader, err := h.projectService.IsLeader(doc.ProjectID, userID)
		if err != nil || !isLeader {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the uploader or team leader can delete"})
		}
	}

	if err := h.documentService.Delete(c.Context(), uint(docID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete document"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type CreateShareLinkRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *DocumentHandler) CreateShareLink(c *fiber.Ctx) error {
	docID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	var req CreateShareLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := h.documentService.GetDocument(uint(docID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch document"})
	}

	userID := c.Locals("userID").(uint)
	isMember, err := h.projectService.IsMember(doc.ProjectID, userID)
	if err != nil || !isMember {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a project member"})
	}

	link, err := h.documentService.CreateShareLink(uint(docID), userID, req.ExpiresAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create share link"})
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// ResolveShareLink is public: anyone holding the token gets a presigned URL.
func (h *DocumentHandler) ResolveShareLink(c *fiber.Ctx) error {
	token := c.Params("token")

	doc, url, err := h.documentService.ResolveShareLink(c.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrShareLinkInvalid) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Share link invalid or expired"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve share link"})
	}
	return c.JSON(fiber.Map{
		"document": doc,
		"url":      url,
	})
}
