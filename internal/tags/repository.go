package tags

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the storage surface of the tag workflows. InTx hands the
// caller a Repository bound to one transaction; the site-row reads inside
// a transaction take a FOR UPDATE lock, which serializes the whole
// read-decide-write sequence for concurrent requests against the same
// site, and therefore against the same (site, tag) pair.
//
// The sites table is reached by table name rather than by importing the
// sites package: sites depends on this package for the tag-set transform,
// and the dependency only points one way.
type Repository interface {
	InTx(fn func(tx Repository) error) error

	// Site row access, scoped to what the workflows need.
	SiteTagsForUpdate(siteID uint) (string, bool, error)
	UpdateSiteTags(siteID uint, tagField string) error

	// Addition requests.
	HasPendingAddition(siteID uint, tagName string) (bool, error)
	CreateAddition(req *TagAdditionRequest) error

	// Deletion requests.
	FindDeletion(siteID uint, tagName string) (*TagDeletionRequest, error)
	SaveDeletion(req *TagDeletionRequest) error
	ListHidden() ([]HiddenDeletionRequest, error)
	FindDeletionByID(id uint) (*TagDeletionRequest, error)
	DeleteDeletion(req *TagDeletionRequest) error
}

// HiddenDeletionRequest is a deletion request joined with its site's name
// for the admin review listing.
type HiddenDeletionRequest struct {
	ID           uint   `json:"id"`
	SiteID       uint   `json:"site_id"`
	SiteName     string `json:"site_name"`
	TagName      string `json:"tag_name"`
	RequestCount int    `json:"request_count"`
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InTx(fn func(tx Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

// siteRow is the slice of the sites table the workflows touch.
type siteRow struct {
	ID   uint
	Tags string
}

func (r *repository) SiteTagsForUpdate(siteID uint) (string, bool, error) {
	var row siteRow
	err := r.db.Table("sites").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "tags").
		Where("id = ?", siteID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Tags, true, nil
}

func (r *repository) UpdateSiteTags(siteID uint, tagField string) error {
	return r.db.Table("sites").
		Where("id = ?", siteID).
		Update("tags", tagField).Error
}

func (r *repository) HasPendingAddition(siteID uint, tagName string) (bool, error) {
	var count int64
	err := r.db.Model(&TagAdditionRequest{}).
		Where("site_id = ? AND tag_name = ? AND status = ?", siteID, tagName, ApprovalPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateAddition(req *TagAdditionRequest) error {
	return r.db.Create(req).Error
}

func (r *repository) FindDeletion(siteID uint, tagName string) (*TagDeletionRequest, error) {
	var req TagDeletionRequest
	err := r.db.Where("site_id = ? AND tag_name = ?", siteID, tagName).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) SaveDeletion(req *TagDeletionRequest) error {
	return r.db.Save(req).Error
}

func (r *repository) ListHidden() ([]HiddenDeletionRequest, error) {
	var out []HiddenDeletionRequest
	err := r.db.Table("tag_deletion_requests").
		Select("tag_deletion_requests.id, tag_deletion_requests.site_id, sites.name AS site_name, tag_deletion_requests.tag_name, tag_deletion_requests.request_count").
		Joins("JOIN sites ON sites.id = tag_deletion_requests.site_id").
		Where("tag_deletion_requests.hidden = ?", true).
		Order("tag_deletion_requests.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *repository) FindDeletionByID(id uint) (*TagDeletionRequest, error) {
	var req TagDeletionRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) DeleteDeletion(req *TagDeletionRequest) error {
	return r.db.Delete(req).Error
}
