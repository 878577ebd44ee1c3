package repository

import (
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepository) FindByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.Preload("Uploader").First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}

func (r *DocumentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

func (r *DocumentRepository) ListByProject(projectID uint) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Preload("Uploader").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) CreateShareLink(link *models.DocumentShareLink) error {
	return r.db.Create(link).Error
}

func (r *DocumentRepository) FindShareLinkByToken(token string) (*models.DocumentShareLink, error) {
	var link models.DocumentShareLink
	err := r.db.Preload("Document").Where("token = ?", token).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *DocumentRepository) RevokeShareLink(id uint, revokedAt time.Time) error {
	return r.db.Model(&models.DocumentShareLink{}).Where("id = ?", id).
		UpdateColumn("revoked_at", revokedAt).Error
}
