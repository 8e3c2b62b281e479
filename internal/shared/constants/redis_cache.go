package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the mulnori backend.
// Pattern: mulnori:{module}:{operation}:{identifier}

const CACHE_PREFIX = "mulnori"

const (
	// Approved-site listing consumed by the map. Invalidated on every
	// registration, status change, and tag mutation, so the TTL is only a
	// backstop.
	TTL_PUBLIC_SITES = 15 * time.Minute

	// Single-site details.
	TTL_SITE_DETAIL = 5 * time.Minute

	// Board category list changes rarely.
	TTL_BOARD_CATEGORIES = 6 * time.Hour
)

const (
	KEY_PUBLIC_SITES     = CACHE_PREFIX + ":sites:public"
	KEY_BOARD_CATEGORIES = CACHE_PREFIX + ":boards:categories"
)

func SiteDetailKey(siteID uint) string {
	return fmt.Sprintf("%s:sites:detail:%d", CACHE_PREFIX, siteID)
}
