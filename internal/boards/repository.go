package boards

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	ListCategories() ([]Category, error)
	GetCategory(id uint) (*Category, error)
	ListPosts(categoryID *uint) ([]Board, error)
	GetPost(id uint) (*Board, error)
	CreatePost(post *Board) error
	IncrementViews(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCategories() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *repository) GetCategory(id uint) (*Category, error) {
	var category Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

func (r *repository) ListPosts(categoryID *uint) ([]Board, error) {
	var posts []Board
	query := r.db.Preload("Category").Order("id DESC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *repository) GetPost(id uint) (*Board, error) {
	var post Board
	err := r.db.Preload("Category").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return &post, nil
}

func (r *repository) CreatePost(post *Board) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *repository) IncrementViews(id uint) error {
	err := r.db.Model(&Board{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment views for post %d: %w", id, err)
	}
	return nil
}
