package boards

type CreatePostRequest struct {
	CategoryID uint   `json:"category_id" binding:"required,min=1"`
	Title      string `json:"title" binding:"required,max=255"`
	Content    string `json:"content" binding:"required"`
	Author     string `json:"author" binding:"required,max=100"`
}
