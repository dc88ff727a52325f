package library

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Record is one catalog entry for a board game.
type Record struct {
	ID                            string
	Title                         string
	AlternativeTitles             []string
	Year                          *int
	PublicationDates              []string
	HumanReadablePublicationDates []string
	Languages                     []string
	OriginalLanguages             []string
	Authors                       AuthorGroups
	Publishers                    []string
	Summary                       []string
	Genres                        []string
	Subjects                      []string
	PlayingTimes                  []string
	TargetAudienceNotes           []string
	PhysicalDescriptions          []string
}

// AuthorDetail carries the per-author metadata the catalog exposes.
type AuthorDetail struct {
	Role []string `json:"role,omitempty"`
}

// AuthorGroups holds catalog authors keyed by name within their role group.
// Only the primary group feeds matching; the others ride along for the
// database load.
type AuthorGroups struct {
	Primary   map[string]AuthorDetail `json:"primary,omitempty"`
	Secondary map[string]AuthorDetail `json:"secondary,omitempty"`
	Corporate map[string]AuthorDetail `json:"corporate,omitempty"`
}

// UnmarshalJSON accepts both the object form and the list-of-groups form
// the API has been observed to return.
func (g *AuthorGroups) UnmarshalJSON(data []byte) error {
	type plain AuthorGroups
	var single plain
	if err := json.Unmarshal(data, &single); err == nil {
		*g = AuthorGroups(single)
		return nil
	}
	var groups []plain
	if err := json.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("library: decode author groups: %w", err)
	}
	merged := AuthorGroups{}
	for _, group := range groups {
		merged.Primary = mergeAuthors(merged.Primary, group.Primary)
		merged.Secondary = mergeAuthors(merged.Secondary, group.Secondary)
		merged.Corporate = mergeAuthors(merged.Corporate, group.Corporate)
	}
	*g = merged
	return nil
}

func mergeAuthors(dst, src map[string]AuthorDetail) map[string]AuthorDetail {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]AuthorDetail, len(src))
	}
	for name, detail := range src {
		dst[name] = detail
	}
	return dst
}

// PrimaryAuthors returns the primary role group's names in sorted order.
func (r Record) PrimaryAuthors() []string {
	if len(r.Authors.Primary) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Authors.Primary))
	for name := range r.Authors.Primary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllAuthors returns every author name across the three role groups,
// sorted and deduplicated.
func (r Record) AllAuthors() []string {
	seen := make(map[string]struct{})
	for _, group := range []map[string]AuthorDetail{r.Authors.Primary, r.Authors.Secondary, r.Authors.Corporate} {
		for name := range group {
			seen[name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
