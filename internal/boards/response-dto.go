package boards

import "time"

type BoardResponse struct {
	ID        uint      `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBoardResponse(post *Board) BoardResponse {
	return BoardResponse{
		ID:        post.ID,
		Category:  post.Category.Name,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author,
		Views:     post.Views,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
