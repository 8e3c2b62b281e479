package sites

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(site *Site) error
	GetByID(id uint) (*Site, error)
	List(status *SiteStatus) ([]Site, error)
	UpdateStatus(id uint, status SiteStatus) (*Site, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(site *Site) error {
	return r.db.Create(site).Error
}

func (r *repository) GetByID(id uint) (*Site, error) {
	var site Site
	err := r.db.Where("id = ?", id).First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (r *repository) List(status *SiteStatus) ([]Site, error) {
	var sites []Site
	db := r.db.Model(&Site{})
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	err := db.Order("id ASC").Find(&sites).Error
	return sites, err
}

func (r *repository) UpdateStatus(id uint, status SiteStatus) (*Site, error) {
	var site Site
	if err := r.db.Where("id = ?", id).First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.Model(&site).Update("status", status).Error; err != nil {
		return nil, err
	}

	site.Status = status
	return &site, nil
}
