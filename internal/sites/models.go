package sites

import (
	"time"

	"mulnori/internal/tags"
)

// Site is a proposed or approved dive location. Tags are stored as a
// single comma-joined column; the tags package owns that format. Sites are
// never physically deleted, they move between approval statuses.
type Site struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null;size:255"`
	Lat       float64    `json:"lat" gorm:"type:double precision;not null"`
	Lon       float64    `json:"lon" gorm:"type:double precision;not null"`
	Tags      string     `json:"-" gorm:"type:text"`
	Status    SiteStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToResponse renders the site with its tag column expanded into a list.
func (s *Site) ToResponse() SiteResponse {
	tagList := tags.Parse(s.Tags)
	if tagList == nil {
		tagList = []string{}
	}
	return SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Lat:       s.Lat,
		Lon:       s.Lon,
		Tags:      tagList,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Site) TableName() string {
	return "sites"
}
