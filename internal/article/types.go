// Package article defines the normalized record produced for every feed entry.
//
// This package enables newsagg to:
// - Map any parsed feed entry (RSS, Atom, JSON Feed) onto one flat Article shape
// - Derive a readable source label from an article's link
package article

// UnknownSource is the source label used when no host can be derived from a link.
const UnknownSource = "Unknown"

// Article is one normalized news item. All fields are always present when
// serialized; missing feed values are empty strings.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Published string `json:"published"`
	Source    string `json:"source"`
}
