package notify

import "time"

// EventType identifies a governance event published to Kafka.
type EventType string

const (
	EventSiteRegistered EventType = "site.registered"
	EventSiteApproved   EventType = "site.approved"
	EventTagHidden      EventType = "tag.hidden"
)

// GovernanceEvent is the JSON payload published for every governance
// transition downstream consumers care about (moderation dashboards,
// audit trails).
type GovernanceEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	SiteID     uint      `json:"site_id"`
	SiteName   string    `json:"site_name,omitempty"`
	TagName    string    `json:"tag_name,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
