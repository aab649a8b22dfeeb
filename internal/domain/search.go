package domain

import (
	"sort"
	"strings"
)

// GlobalResultCap bounds the catalog-wide result list after ranking.
const GlobalResultCap = 50

// Ranking buckets (ascending = better).
const (
	scoreExactID    = 0
	scoreIDPrefix   = 1
	scoreNamePrefix = 2
	scoreOther      = 3
)

// SearchFilter is the user-supplied search input.
// A zero MinRating means no lower bound; a zero MaxRating means no upper bound.
type SearchFilter struct {
	Query     string
	MinRating int
	MaxRating int
}

// SearchResult holds the two ranked lists produced by one search.
type SearchResult struct {
	My     []Problem `json:"my"`
	Global []Problem `json:"global"`
}

// Empty reports whether no search is active: no query and no rating
// bounds. Callers use this as the signal to fall back to folder browsing.
func (f SearchFilter) Empty() bool {
	return strings.TrimSpace(f.Query) == "" && f.MinRating == 0 && f.MaxRating == 0
}

// Match reports whether p satisfies both the text and rating conditions.
//
// Text: empty query matches everything; otherwise the lowercased query
// must be a substring of the id, the name, or one of the tags.
// Rating: rated problems must sit within the bounds; unrated problems
// match only when no lower bound was supplied.
func (f SearchFilter) Match(p *Problem) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q != "" && !matchText(q, p) {
		return false
	}
	if !p.Rated() {
		return f.MinRating == 0
	}
	if f.MinRating != 0 && p.Rating < f.MinRating {
		return false
	}
	if f.MaxRating != 0 && p.Rating > f.MaxRating {
		return false
	}
	return true
}

func matchText(q string, p *Problem) bool {
	if strings.Contains(strings.ToLower(p.ID), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Search ranks the user's folder problems and the full catalog against
// the filter. Both lists are sorted independently; the catalog-wide
// list is capped to GlobalResultCap after sorting.
//
// With no query and no rating bounds the function short-circuits and
// returns two empty lists.
func Search(filter SearchFilter, folders []*Folder, catalog []Problem) SearchResult {
	if filter.Empty() {
		return SearchResult{My: []Problem{}, Global: []Problem{}}
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))

	// Union of folder problems in first-seen order, deduplicated by id.
	my := make([]Problem, 0)
	seen := make(map[string]bool)
	for _, f := range folders {
		for i := range f.Problems {
			p := f.Problems[i]
			if seen[p.ID] || !filter.Match(&p) {
				continue
			}
			seen[p.ID] = true
			my = append(my, p)
		}
	}

	global := make([]Problem, 0)
	for i := range catalog {
		p := catalog[i]
		if filter.Match(&p) {
			global = append(global, p)
		}
	}

	sortRanked(q, my)
	sortRanked(q, global)
	if len(global) > GlobalResultCap {
		global = global[:GlobalResultCap]
	}

	return SearchResult{My: my, Global: global}
}

// score buckets a problem against the lowercased query.
// An empty query scores every candidate equally and ranking
// degenerates to the tie-break.
func score(q string, p *Problem) int {
	if q == "" {
		return scoreOther
	}
	id := strings.ToLower(p.ID)
	switch {
	case id == q:
		return scoreExactID
	case strings.HasPrefix(id, q):
		return scoreIDPrefix
	case strings.HasPrefix(strings.ToLower(p.Name), q):
		return scoreNamePrefix
	default:
		return scoreOther
	}
}

// sortRanked orders by score, then shorter id, then lexicographic id.
func sortRanked(q string, problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		si, sj := score(q, &problems[i]), score(q, &problems[j])
		if si != sj {
			return si < sj
		}
		if len(problems[i].ID) != len(problems[j].ID) {
			return len(problems[i].ID) < len(problems[j].ID)
		}
		return problems[i].ID < problems[j].ID
	})
}
