package repository

import (
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"gorm.io/gorm"
)

type ProjectInviteRepository struct {
	db *gorm.DB
}

func NewProjectInviteRepository(db *gorm.DB) *ProjectInviteRepository {
	return &ProjectInviteRepository{db: db}
}

func (r *ProjectInviteRepository) Create(invite *models.ProjectInvite) error {
	return r.db.Create(invite).Error
}

func (r *ProjectInviteRepository) FindByToken(token string) (*models.ProjectInvite, error) {
	var invite models.ProjectInvite
	err := r.db.Where("token = ?", token).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *ProjectInviteRepository) IncrementUse(id uint) error {
	return r.db.Model(&models.ProjectInvite{}).Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

func (r *ProjectInviteRepository) Revoke(id uint, revokedAt time.Time) error {
	return r.db.Model(&models.ProjectInvite{}).Where("id = ?", id).
		UpdateColumn("revoked_at", revokedAt).Error
}
