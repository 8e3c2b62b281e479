package boards

import "time"

// Category is a moderated post category. Posts may only be filed under a
// category that exists here, since the client lets users type freely.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:100;uniqueIndex"`
}

// Board is a community post: buddy search, trip reports, gear talk.
type Board struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CategoryID uint      `json:"category_id" gorm:"not null;index"`
	Category   Category  `json:"category" gorm:"foreignKey:CategoryID"`
	Title      string    `json:"title" gorm:"not null;size:255"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Author     string    `json:"author" gorm:"not null;size:100"`
	Views      int       `json:"views" gorm:"not null;default:0"`
	Likes      int       `json:"likes" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "board_categories"
}

func (Board) TableName() string {
	return "boards"
}
