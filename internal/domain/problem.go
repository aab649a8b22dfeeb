package domain

import (
	"strconv"
	"strings"
)

// Problem is one entry of the normalized catalog snapshot.
//
// ID is derived from the contest id and the problem index at ingestion
// time and is the stable identity used everywhere: catalog lookups,
// folder membership and submission cross-references.
type Problem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Example: "1504A" (contest 1504, index A).
	ID string `json:"id"`

	// ContestID is the contest the problem belongs to. Zero when the
	// remote entry carried none (such entries never reach the catalog).
	ContestID int `json:"contestId,omitempty"`

	// Index is the letter position inside the contest. Example: "A", "C1".
	Index string `json:"index"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Name is the human-readable problem title.
	Name string `json:"name"`

	// Tags are the remote classification labels. May be empty.
	Tags []string `json:"tags,omitempty"`

	// Rating is the difficulty estimate. Zero means unrated.
	Rating int `json:"rating,omitempty"`
}

// ProblemID derives the stable catalog identity from a contest id and index.
func ProblemID(contestID int, index string) string {
	return strconv.Itoa(contestID) + index
}

// HasTag reports whether the problem carries the given tag (case-insensitive).
func (p *Problem) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Rated reports whether the problem has a difficulty rating.
func (p *Problem) Rated() bool {
	return p.Rating > 0
}
