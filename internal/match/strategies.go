package match

import (
	"context"
	"strings"

	"boardmatch/internal/textutil"
)

// exactMatches collects every candidate whose normalized name equals a
// normalized query title. Hits accumulate across all titles; a candidate is
// credited at most once per search result.
func (m *Matcher) exactMatches(ctx context.Context, src Source) []Scored {
	var matches []Scored
	for _, title := range src.Titles() {
		normalized := textutil.NormalizeTitle(title)
		if normalized == "" {
			continue
		}
		for _, candidate := range m.fetcher.SearchByTitle(ctx, title) {
			for _, name := range candidate.Names {
				if textutil.NormalizeTitle(name) == normalized {
					matches = append(matches, Scored{
						Candidate: candidate,
						Kind:      KindExact,
						Score:     100,
					})
					break
				}
			}
		}
	}
	return matches
}

// substringMatches scans multi-word titles for candidates containing the
// title as a normalized substring and keeps only the highest fuzzy-scoring
// pair. Single-word titles are skipped; they match far too broadly.
func (m *Matcher) substringMatches(ctx context.Context, src Source) []Scored {
	var best *Scored
	for _, title := range src.Titles() {
		if textutil.WordCount(title) <= 1 {
			continue
		}
		normalized := textutil.NormalizeTitle(title)
		if normalized == "" {
			continue
		}
		for _, candidate := range m.fetcher.SearchByTitle(ctx, title) {
			for _, name := range candidate.Names {
				if !strings.Contains(textutil.NormalizeTitle(name), normalized) {
					continue
				}
				score := textutil.SimilarityScore(title, name)
				if best == nil || score > best.Score {
					best = &Scored{
						Candidate: candidate,
						Kind:      KindSubstring,
						Score:     score,
					}
				}
			}
		}
	}
	if best == nil {
		return nil
	}
	return []Scored{*best}
}

// authorFuzzyTitleMatches resolves each author's works, cross-checks the
// author against the candidate's designer list, and keeps candidates whose
// best title similarity clears the threshold. The loop stops at the first
// author whose works survive the designer check, whether or not any of
// them clears the threshold.
func (m *Matcher) authorFuzzyTitleMatches(ctx context.Context, src Source) []Scored {
	titles := src.Titles()
	if len(titles) == 0 {
		return nil
	}
	for _, author := range m.authors(src) {
		var surviving []Candidate
		for _, id := range m.fetcher.SearchByAuthor(ctx, author) {
			candidate := m.fetcher.Details(ctx, id)
			if candidate == nil || !designersContain(candidate.Designers, author) {
				continue
			}
			surviving = append(surviving, *candidate)
		}
		if len(surviving) == 0 {
			continue
		}
		var matches []Scored
		for _, candidate := range surviving {
			score := bestTitleScore(titles, candidate.Names)
			if score >= m.threshold {
				matches = append(matches, Scored{
					Candidate: candidate,
					Kind:      KindAuthorFuzzyTitle,
					Score:     score,
				})
			}
		}
		return matches
	}
	return nil
}

// authorYearMatches is the last resort: the first candidate among an
// author's works whose publication year equals the record's year exactly,
// with the same designer cross-check.
func (m *Matcher) authorYearMatches(ctx context.Context, src Source) []Scored {
	if src.Year == nil {
		return nil
	}
	for _, author := range m.authors(src) {
		for _, id := range m.fetcher.SearchByAuthor(ctx, author) {
			candidate := m.fetcher.Details(ctx, id)
			if candidate == nil || candidate.Year == nil || *candidate.Year != *src.Year {
				continue
			}
			if !designersContain(candidate.Designers, author) {
				continue
			}
			return []Scored{{
				Candidate: *candidate,
				Kind:      KindAuthorYear,
			}}
		}
	}
	return nil
}

func (m *Matcher) authors(src Source) []string {
	authors := make([]string, 0, m.maxAuthors)
	for _, author := range src.Authors {
		if author = strings.TrimSpace(author); author == "" {
			continue
		}
		authors = append(authors, author)
		if len(authors) == m.maxAuthors {
			break
		}
	}
	return authors
}

// designersContain reports whether any designer name contains the author
// name, case-insensitively. The author-to-works link in the external
// system is over-inclusive, so this check is required.
func designersContain(designers []string, author string) bool {
	author = strings.ToLower(strings.TrimSpace(author))
	if author == "" {
		return false
	}
	for _, designer := range designers {
		if strings.Contains(strings.ToLower(designer), author) {
			return true
		}
	}
	return false
}

func bestTitleScore(titles, names []string) int {
	best := 0
	for _, title := range titles {
		for _, name := range names {
			if score := textutil.SimilarityScore(title, name); score > best {
				best = score
			}
		}
	}
	return best
}
