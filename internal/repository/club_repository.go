package repository

import (
	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(club *model.Club) error
	FindByClubID(clubID string) (*model.Club, error)
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(club *model.Club) error {
	return r.db.Create(club).Error
}

func (r *clubRepository) FindByClubID(clubID string) (*model.Club, error) {
	var club model.Club
	if err := r.db.Where("club_id = ?", clubID).First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}
