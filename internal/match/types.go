package match

import "strings"

// Kind identifies the strategy that produced a match. It doubles as the
// cross-strategy tie-break axis.
type Kind string

const (
	KindExact            Kind = "exact"
	KindSubstring        Kind = "substring"
	KindAuthorFuzzyTitle Kind = "author_fuzzy_title"
	KindAuthorYear       Kind = "author_year"
	KindNone             Kind = "none"
)

// Priority orders kinds for disambiguation; lower wins.
func (k Kind) Priority() int {
	switch k {
	case KindExact:
		return 0
	case KindSubstring:
		return 1
	case KindAuthorFuzzyTitle:
		return 2
	case KindAuthorYear:
		return 3
	default:
		return 4
	}
}

// Candidate is a prospective match from the external game database.
// Designers are populated only when the candidate came through a detail
// fetch.
type Candidate struct {
	ID        string
	Names     []string
	Year      *int
	Designers []string
}

// Scored pairs a candidate with the strategy that found it and, where the
// strategy ranks by similarity, the fuzzy score.
type Scored struct {
	Candidate
	Kind  Kind
	Score int
}

// Source is the matcher's view of one library catalog record.
type Source struct {
	ID        string
	Title     string
	AltTitles []string
	Year      *int
	Authors   []string
}

// Titles builds the ordered query title set: the primary title first, then
// each non-empty alternative, trimmed.
func (s Source) Titles() []string {
	titles := make([]string, 0, 1+len(s.AltTitles))
	if title := strings.TrimSpace(s.Title); title != "" {
		titles = append(titles, title)
	}
	for _, alt := range s.AltTitles {
		if alt = strings.TrimSpace(alt); alt != "" {
			titles = append(titles, alt)
		}
	}
	return titles
}

// Result is the durable outcome for one source record. TargetID is empty
// and Kind is none when nothing resolved.
type Result struct {
	SourceID string
	TargetID string
	Kind     Kind
}
