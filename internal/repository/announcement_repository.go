package repository

import (
	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(a *model.Announcement) error
	FindForClass(className string, limit int) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(a *model.Announcement) error {
	return r.db.Create(a).Error
}

func (r *announcementRepository) FindForClass(className string, limit int) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.
		Where("target_class = ? OR target_class = ?", model.AssignedClassesAll, className).
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error
	return announcements, err
}
