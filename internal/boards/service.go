package boards

import (
	"context"
	"strings"

	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/constants"
	"mulnori/pkg/cache"
)

type Service interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListPosts(categoryID *uint) ([]BoardResponse, error)
	CreatePost(req CreatePostRequest) (*BoardResponse, error)
	GetPost(id uint) (*BoardResponse, error)

	SetCacheService(c cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache used for the category listing.
func (s *service) SetCacheService(c cache.Service) {
	s.cacheService = c
}

// ListCategories serves from cache when available. Categories change only
// through seeding, so a long TTL is fine.
func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	if s.cacheService == nil {
		categories, err := s.repo.ListCategories()
		if err != nil {
			return nil, apperror.Storage("could not load categories", err)
		}
		return categories, nil
	}

	var categories []Category
	err := s.cacheService.GetOrSet(ctx, constants.KEY_BOARD_CATEGORIES, constants.TTL_BOARD_CATEGORIES,
		func() (interface{}, error) {
			return s.repo.ListCategories()
		}, &categories)
	if err != nil {
		return nil, apperror.Storage("could not load categories", err)
	}
	return categories, nil
}

func (s *service) ListPosts(categoryID *uint) ([]BoardResponse, error) {
	posts, err := s.repo.ListPosts(categoryID)
	if err != nil {
		return nil, apperror.Storage("could not list posts", err)
	}
	responses := make([]BoardResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, toBoardResponse(&p))
	}
	return responses, nil
}

func (s *service) CreatePost(req CreatePostRequest) (*BoardResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.Validation("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("content is required")
	}
	if strings.TrimSpace(req.Author) == "" {
		return nil, apperror.Validation("author is required")
	}

	category, err := s.repo.GetCategory(req.CategoryID)
	if err != nil {
		return nil, apperror.Storage("could not check category", err)
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}

	post := &Board{
		CategoryID: req.CategoryID,
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		Author:     strings.TrimSpace(req.Author),
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, apperror.Storage("could not create post", err)
	}
	post.Category = *category

	resp := toBoardResponse(post)
	return &resp, nil
}

// GetPost bumps the view counter before returning the post. The response
// carries the incremented count so the client does not have to refetch.
func (s *service) GetPost(id uint) (*BoardResponse, error) {
	post, err := s.repo.GetPost(id)
	if err != nil {
		return nil, apperror.Storage("could not get post", err)
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}
	if err := s.repo.IncrementViews(id); err != nil {
		return nil, apperror.Storage("could not record view", err)
	}
	post.Views++

	resp := toBoardResponse(post)
	return &resp, nil
}
