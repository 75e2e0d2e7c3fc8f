package search

import (
	"math"
	"sort"
	"strings"

	"debtster-insights/internal/domain"
)

// Search runs the record matcher over every record and returns matches sorted
// by score, highest first, truncated to opts.MaxResults. Ties keep input
// order. An empty or whitespace-only query yields an empty result, never an
// error.
func Search(records []domain.DebtRecord, query string, opts Options) []domain.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	opts = opts.Normalized()

	var results []domain.SearchResult
	for i := range records {
		if r := MatchRecord(&records[i], query, opts); r != nil {
			results = append(results, *r)
		}
	}

	sortByScore(results)

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// AdvancedSearch splits the query on whitespace and requires every term to
// match (AND). A single-term query delegates to Search unchanged. The
// combined score is the mean of per-term scores, matched fields are the union
// across terms, and for a field matched by several terms the highlight of the
// last term wins.
func AdvancedSearch(records []domain.DebtRecord, query string, opts Options) []domain.SearchResult {
	terms := strings.Fields(query)
	if len(terms) <= 1 {
		return Search(records, query, opts)
	}
	opts = opts.Normalized()

	// Search each term over the full set; truncation happens only at the end.
	termOpts := opts
	termOpts.MaxResults = len(records)
	if termOpts.MaxResults == 0 {
		termOpts.MaxResults = 1
	}

	perTerm := make([][]domain.SearchResult, len(terms))
	for i, term := range terms {
		perTerm[i] = Search(records, term, termOpts)
	}

	indexed := make([]map[string]*domain.SearchResult, len(terms))
	for i := 1; i < len(terms); i++ {
		byID := make(map[string]*domain.SearchResult, len(perTerm[i]))
		for j := range perTerm[i] {
			r := &perTerm[i][j]
			if _, ok := byID[r.Record.CustomerID]; !ok {
				byID[r.Record.CustomerID] = r
			}
		}
		indexed[i] = byID
	}

	// Intersect in first-term order so the pre-sort ordering is deterministic.
	var combined []domain.SearchResult
	for i := range perTerm[0] {
		first := &perTerm[0][i]

		matches := []*domain.SearchResult{first}
		foundInAll := true
		for t := 1; t < len(terms); t++ {
			r, ok := indexed[t][first.Record.CustomerID]
			if !ok {
				foundInAll = false
				break
			}
			matches = append(matches, r)
		}
		if !foundInAll {
			continue
		}

		combined = append(combined, mergeTermResults(matches))
	}

	sortByScore(combined)

	if len(combined) > opts.MaxResults {
		combined = combined[:opts.MaxResults]
	}
	return combined
}

func mergeTermResults(matches []*domain.SearchResult) domain.SearchResult {
	var sum float64
	var fields []string
	seen := make(map[string]bool)
	highlights := make(map[string]string)

	for _, m := range matches {
		sum += m.Score
		for _, f := range m.MatchedFields {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
			// Later terms overwrite earlier highlights for the same field.
			highlights[f] = m.Highlights[f]
		}
	}

	return domain.SearchResult{
		Record:        matches[0].Record,
		Score:         sum / float64(len(matches)),
		MatchedFields: fields,
		Highlights:    highlights,
	}
}

func sortByScore(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// Summarize aggregates a result list for display. elapsedMS is the wall-clock
// duration of the search as measured by the caller; this package does not
// read the clock.
func Summarize(results []domain.SearchResult, elapsedMS int64) domain.SearchSummary {
	if len(results) == 0 {
		return domain.SearchSummary{SearchTimeMS: elapsedMS, TopMatchedFields: []string{}}
	}

	var sum float64
	counts := make(map[string]int)
	var order []string
	for _, r := range results {
		sum += r.Score
		for _, f := range r.MatchedFields {
			if counts[f] == 0 {
				order = append(order, f)
			}
			counts[f]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 3 {
		order = order[:3]
	}

	return domain.SearchSummary{
		TotalResults:     len(results),
		AvgScore:         math.Round(sum/float64(len(results))*100) / 100,
		TopMatchedFields: order,
		SearchTimeMS:     elapsedMS,
	}
}
