package sites

import "time"

// SiteResponse is the wire form of a site, tag column expanded.
type SiteResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Tags      []string   `json:"tags"`
	Status    SiteStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
