package tags

// TagRequest is the body of both workflow endpoints: a site reference and
// the tag in question.
type TagRequest struct {
	SiteID  uint   `json:"site_id" binding:"required,min=1"`
	TagName string `json:"tag_name" binding:"required,max=50"`
}
