package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
	"github.com/shubhamjanki/collabhub-backend/internal/storage"
)

var (
	ErrStorageUnavailable = errors.New("object storage not configured")
	ErrShareLinkInvalid   = errors.New("share link invalid or expired")
)

type DocumentService struct {
	docRepo       repository.DocumentRepositoryInterface
	store         *storage.S3Storage
	contributions *ContributionService
}

func NewDocumentService(docRepo repository.DocumentRepositoryInterface, store *storage.S3Storage, contributions *ContributionService) *DocumentService {
	return &DocumentService{
		docRepo:       docRepo,
		store:         store,
		contributions: contributions,
	}
}

// Upload stores the file in object storage and creates the metadata row.
func (s *DocumentService) Upload(ctx context.Context, projectID, uploaderID uint, title, contentType string, body io.Reader, size int64) (*models.Document, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("document title is required")
	}

	key := "documents/" + uuid.NewString()
	stat, err := s.store.PutObject(ctx, key, body, size, contentType)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ProjectID:   projectID,
		UploaderID:  uploaderID,
		Title:       title,
		ObjectKey:   key,
		ContentType: contentType,
		Size:        stat.Size,
	}
	if err := s.docRepo.Create(doc); err != nil {
		// Metadata failed; don't leave an orphan object behind.
		if derr := s.store.DeleteObject(ctx, key); derr != nil {
			log.Printf("Failed to clean up orphan object %s: %v", key, derr)
		}
		return nil, err
	}
	return s.docRepo.FindByID(doc.ID)
}

type SaveEditInput struct {
	CharsAdded   int `json:"chars_added"`
	CharsRemoved int `json:"chars_removed"`
}

// SaveEdit replaces a document's content and records the edit activity with
// its character deltas. Negative deltas are clamped to zero.
func (s *DocumentService) SaveEdit(ctx context.Context, docID, editorID uint, body io.Reader, size int64, input SaveEditInput) (*models.Document, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	doc, err := s.docRepo.FindByID(docID)
	if err != nil {
		return nil, err
	}

	stat, err := s.store.PutObject(ctx, doc.ObjectKey, body, size, doc.ContentType)
	if err != nil {
		return nil, err
	}
	doc.Size = stat.Size
	if err := s.docRepo.Update(doc); err != nil {
		return nil, err
	}

	if s.contributions != nil {
		delta := &EditDelta{
			CharsAdded:   max0(input.CharsAdded),
			CharsRemoved: max0(input.CharsRemoved),
		}
		if err := s.contributions.TrackContribution(editorID, doc.ProjectID, ActivityEdit, delta); err != nil {
			log.Printf("Failed to track edit activity for user %d on document %d: %v", editorID, docID, err)
		}
	}

	return doc, nil
}

func (s *DocumentService) GetDocument(id uint) (*models.Document, error) {
	return s.docRepo.FindByID(id)
}

func (s *DocumentService) ListByProject(projectID uint) ([]models.Document, error) {
	return s.docRepo.ListByProject(projectID)
}

// Download returns a short-lived presigned URL for the document object.
func (s *DocumentService) Download(ctx context.Context, docID uint) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	doc, err := s.docRepo.FindByID(docID)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.ObjectKey, 15*time.Minute)
}

func (s *DocumentService) Delete(ctx context.Context, docID uint) error {
	doc, err := s.docRepo.FindByID(docID)
	if err != nil {
		return err
	}
	if s.store != nil {
		if err := s.store.DeleteObject(ctx, doc.ObjectKey); err != nil {
			log.Printf("Failed to delete object %s: %v", doc.ObjectKey, err)
		}
	}
	return s.docRepo.Delete(docID)
}

// CreateShareLink issues a token that resolves to a presigned URL, so a
// document can be handed to someone outside the project.
func (s *DocumentService) CreateShareLink(docID, creatorID uint, expiresAt *time.Time) (*models.DocumentShareLink, error) {
	if _, err := s.docRepo.FindByID(docID); err != nil {
		return nil, err
	}
	link := &models.DocumentShareLink{
		DocumentID: docID,
		Token:      generateShareToken(),
		CreatedBy:  creatorID,
		ExpiresAt:  expiresAt,
	}
	if err := s.docRepo.CreateShareLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

// ResolveShareLink validates a share token and returns the document plus a
// presigned URL for its content.
func (s *DocumentService) ResolveShareLink(ctx context.Context, token string) (*models.Document, string, error) {
	link, err := s.docRepo.FindShareLinkByToken(token)
	if err != nil {
		return nil, "", ErrShareLinkInvalid
	}
	if link.RevokedAt != nil {
		return nil, "", ErrShareLinkInvalid
	}
	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		return nil, "", ErrShareLinkInvalid
	}
	if s.store == nil {
		return nil, "", ErrStorageUnavailable
	}

	url, err := s.store.PresignGet(ctx, link.Document.ObjectKey, 15*time.Minute)
	if err != nil {
		return nil, "", err
	}
	return &link.Document, url, nil
}

func generateShareToken() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().String()))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
