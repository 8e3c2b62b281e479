package sites

// SiteStatus is the approval lifecycle state of a dive site.
type SiteStatus string

const (
	StatusPending  SiteStatus = "PENDING"
	StatusApproved SiteStatus = "APPROVED"
	StatusRejected SiteStatus = "REJECTED"
)

// ParseStatus maps a raw string onto a known status. Any transition
// between known statuses is allowed; only membership is checked.
func ParseStatus(s string) (SiteStatus, bool) {
	switch SiteStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return SiteStatus(s), true
	}
	return "", false
}
