package tags

import (
	"time"
)

// ApprovalStatus is the moderation state of a tag addition request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// TagAdditionRequest is the audit record created when a user proposes a
// new tag for a site. The tag does not appear on the site until a
// moderator flips the status; only the pending state matters to the
// addition workflow itself.
type TagAdditionRequest struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	SiteID      uint           `json:"site_id" gorm:"not null;index"`
	TagName     string         `json:"tag_name" gorm:"size:50;not null"`
	Status      ApprovalStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	RequestedAt time.Time      `json:"requested_at" gorm:"autoCreateTime"`
}

// TagDeletionRequest accumulates crowd-sourced removal requests for one
// (site, tag) pair. RequestCount only grows; Hidden flips to true exactly
// once, when the count first reaches the threshold, and the record is
// removed only by an explicit admin purge.
type TagDeletionRequest struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SiteID       uint   `json:"site_id" gorm:"not null;index"`
	TagName      string `json:"tag_name" gorm:"size:50;not null"`
	RequestCount int    `json:"request_count" gorm:"not null;default:1"`
	Hidden       bool   `json:"hidden" gorm:"not null;default:false;index"`
}

func (TagAdditionRequest) TableName() string {
	return "tag_addition_requests"
}

func (TagDeletionRequest) TableName() string {
	return "tag_deletion_requests"
}
