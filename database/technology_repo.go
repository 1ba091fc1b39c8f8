package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio-backend/models"
)

type TechnologyRepo struct {
	db *gorm.DB
}

func NewTechnologyRepo(db *gorm.DB) *TechnologyRepo {
	return &TechnologyRepo{db}
}

// FindAll returns all technologies from the database
func (r *TechnologyRepo) FindAll() ([]models.Technology, error) {
	var technologies []models.Technology
	err := r.db.Order("name ASC").Find(&technologies).Error
	return technologies, err
}

// FindByName returns the technology with the given name, or nil if absent
func (r *TechnologyRepo) FindByName(name string) (*models.Technology, error) {
	var technology models.Technology
	err := r.db.Where("name = ?", name).First(&technology).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &technology, nil
}

// FindOrCreate reuses an existing technology row by name or inserts a new
// one. The icon only applies on first creation; existing rows keep theirs.
func (r *TechnologyRepo) FindOrCreate(name string, icon *string) (*models.Technology, error) {
	existing, err := r.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	technology := models.Technology{ID: uuid.New(), Name: name, Icon: icon}
	if err := r.db.Create(&technology).Error; err != nil {
		return nil, err
	}
	return &technology, nil
}
