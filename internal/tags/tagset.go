package tags

import (
	"strings"

	"mulnori/internal/shared/apperror"
)

// A site's tags live in a single comma-joined text column. The functions
// here are the only way the workflows read or rewrite that column: parse,
// transform, serialize back, all against the whole set at once.
//
// Matching is exact and case-sensitive. Parse trims surrounding whitespace
// and drops empty entries, so Parse(Serialize(Parse(s))) always equals
// Parse(s).

const delimiter = ","

// Parse splits a tag column into its ordered, distinct tag values.
func Parse(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}

	var out []string
	for _, raw := range strings.Split(field, delimiter) {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Contains reports whether candidate is in the set, by exact string match.
func Contains(set []string, candidate string) bool {
	for _, tag := range set {
		if tag == candidate {
			return true
		}
	}
	return false
}

// Add appends candidate to the set, preserving existing order. Adding a tag
// that is already present is a conflict.
func Add(set []string, candidate string) ([]string, error) {
	if Contains(set, candidate) {
		return nil, apperror.Conflict("tag already exists on this site")
	}
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, candidate), nil
}

// Remove deletes target from the set. Removing an absent tag is a
// not-found error; callers that treat absence as already-satisfied check
// Contains first.
func Remove(set []string, target string) ([]string, error) {
	for i, tag := range set {
		if tag == target {
			out := make([]string, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...), nil
		}
	}
	return nil, apperror.NotFound("tag not present on this site")
}

// Serialize joins the set back into the stored column format.
func Serialize(set []string) string {
	return strings.Join(set, delimiter)
}

// Normalize rewrites a raw tag field into canonical stored form: parsed,
// deduplicated keeping first occurrence, serialized. Used when callers
// supply a whole tag list at once (site registration).
func Normalize(field string) string {
	seen := make(map[string]bool)
	var out []string
	for _, tag := range Parse(field) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return Serialize(out)
}
