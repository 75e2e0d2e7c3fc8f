package search

import (
	"strings"
	"unicode/utf8"

	"debtster-insights/internal/domain"
)

// Highlight markers wrapped around the matched span of the original field
// text. The rendering layer decides styling; the engine only guarantees the
// markers wrap the located span.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Searchable field names as they appear in matched_fields / highlights.
const (
	FieldCustomerName    = "customer_name"
	FieldIDNumber        = "id_number"
	FieldCustomerID      = "customer_id"
	FieldPhone           = "phone"
	FieldCollectionAgent = "collection_agent"
	FieldNotes           = "notes"
)

// fieldValues maps a searchable field name to its value on a record.
var fieldValues = map[string]func(r *domain.DebtRecord) string{
	FieldCustomerName:    func(r *domain.DebtRecord) string { return r.CustomerName },
	FieldIDNumber:        func(r *domain.DebtRecord) string { return r.IDNumber },
	FieldCustomerID:      func(r *domain.DebtRecord) string { return r.CustomerID },
	FieldPhone:           func(r *domain.DebtRecord) string { return r.Phone },
	FieldCollectionAgent: func(r *domain.DebtRecord) string { return r.CollectionAgent },
	FieldNotes:           func(r *domain.DebtRecord) string { return r.Notes },
}

// KnownField reports whether a field name is searchable.
func KnownField(name string) bool {
	_, ok := fieldValues[name]
	return ok
}

// Options configures matching and ranking. The zero value of any field means
// "use the default"; Normalized fills the defaults in once at the API
// boundary.
type Options struct {
	// FuzzyThreshold is the minimum similarity for a fuzzy field match.
	FuzzyThreshold float64
	// MaxResults truncates the ranked result list.
	MaxResults int
	// Fields is the ordered set of field names to search.
	Fields []string
	// BoostFields weighs each field's score contribution. Fields absent from
	// the map weigh 1.0; an explicit 0 removes the field from both the score
	// and the normalization denominator.
	BoostFields map[string]float64
	// ExactMatchBoost multiplies a perfect exact-normalized field match.
	ExactMatchBoost float64
}

// DefaultOptions are the dashboard's tuned search parameters.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold: 0.6,
		MaxResults:     100,
		Fields: []string{
			FieldCustomerName,
			FieldIDNumber,
			FieldCustomerID,
			FieldPhone,
			FieldCollectionAgent,
			FieldNotes,
		},
		BoostFields: map[string]float64{
			FieldCustomerName:    2.0,
			FieldIDNumber:        1.5,
			FieldCustomerID:      1.5,
			FieldPhone:           1.0,
			FieldCollectionAgent: 0.8,
			FieldNotes:           0.5,
		},
		ExactMatchBoost: 3.0,
	}
}

// Normalized returns a copy of o with unset fields replaced by defaults.
func (o Options) Normalized() Options {
	def := DefaultOptions()
	if o.FuzzyThreshold == 0 {
		o.FuzzyThreshold = def.FuzzyThreshold
	}
	if o.MaxResults == 0 {
		o.MaxResults = def.MaxResults
	}
	if len(o.Fields) == 0 {
		o.Fields = def.Fields
	}
	if o.BoostFields == nil {
		o.BoostFields = def.BoostFields
	}
	if o.ExactMatchBoost == 0 {
		o.ExactMatchBoost = def.ExactMatchBoost
	}
	return o
}

func (o Options) boost(field string) float64 {
	if b, ok := o.BoostFields[field]; ok {
		return b
	}
	return 1.0
}

// PartialMatch reports whether text contains term after full matching
// normalization on both sides.
func PartialMatch(term, text string) bool {
	return strings.Contains(normalizeForMatch(text), normalizeForMatch(term))
}

// MatchRecord scores one record against one query across the configured
// fields and returns nil when nothing matches. opts must already be
// normalized by the caller.
func MatchRecord(record *domain.DebtRecord, query string, opts Options) *domain.SearchResult {
	normalizedQuery := normalizeForMatch(query)
	if normalizedQuery == "" {
		return nil
	}

	var (
		totalScore    float64
		matchedFields []string
		highlights    map[string]string
	)

	for _, field := range opts.Fields {
		value, ok := fieldValues[field]
		if !ok {
			continue
		}
		fieldText := value(record)
		if fieldText == "" {
			continue
		}

		normalizedField := normalizeForMatch(fieldText)

		var fieldScore float64
		matched := false

		if normalizedField == normalizedQuery {
			fieldScore = 1.0 * opts.ExactMatchBoost
			matched = true
		} else {
			if strings.Contains(normalizedField, normalizedQuery) {
				if sim := Similarity(normalizedQuery, normalizedField); sim >= opts.FuzzyThreshold {
					fieldScore = sim
					matched = true
				}
			}

			// Word-level fallback, also reached when a contained query is too
			// short relative to the whole field to clear the threshold: sum
			// qualifying cross-similarities and average over the query word
			// count.
			if !matched {
				queryWords := strings.Fields(normalizedQuery)
				fieldWords := strings.Fields(normalizedField)

				var wordMatches float64
				for _, qw := range queryWords {
					for _, fw := range fieldWords {
						if sim := Similarity(qw, fw); sim >= opts.FuzzyThreshold {
							wordMatches += sim
						}
					}
				}

				if wordMatches > 0 {
					fieldScore = wordMatches / float64(len(queryWords))
					matched = true
				}
			}
		}

		if matched {
			totalScore += fieldScore * opts.boost(field)
			matchedFields = append(matchedFields, field)
			if highlights == nil {
				highlights = make(map[string]string)
			}
			highlights[field] = Highlight(fieldText, query)
		}
	}

	if totalScore == 0 {
		return nil
	}

	// Normalize by the maximum possible weighted score. Exact-match boosts can
	// push individual field contributions above their weight, hence the cap.
	var maxPossible float64
	for _, field := range opts.Fields {
		maxPossible += opts.boost(field)
	}
	if maxPossible == 0 {
		return nil
	}

	score := totalScore / maxPossible
	if score > 1.0 {
		score = 1.0
	}

	return &domain.SearchResult{
		Record:        record,
		Score:         score,
		MatchedFields: matchedFields,
		Highlights:    highlights,
	}
}

// Highlight wraps the span of text matching term with the highlight markers.
// The span is located by walking the original text in step with its
// normalized form; when no span can be located the original text is returned
// unchanged.
func Highlight(text, term string) string {
	if term == "" || text == "" {
		return text
	}

	normalizedTerm := normalizeForMatch(term)
	normalizedText := normalizeForMatch(text)

	byteIdx := strings.Index(normalizedText, normalizedTerm)
	if byteIdx < 0 {
		return text
	}
	matchIdx := utf8.RuneCountInString(normalizedText[:byteIdx])

	textRunes := []rune(text)
	normalizedRunes := []rune(normalizedText)

	// Align the normalized match position back onto the original text:
	// characters that normalization dropped advance only the original cursor.
	origIdx, normIdx := 0, 0
	for normIdx < matchIdx && origIdx < len(textRunes) {
		normalizedChar := normalizeForMatch(string(textRunes[origIdx]))
		if normIdx < len(normalizedRunes) && normalizedChar == string(normalizedRunes[normIdx]) {
			normIdx++
		}
		origIdx++
	}

	start := origIdx - 1
	if start < 0 {
		start = 0
	}
	end := start + utf8.RuneCountInString(term)
	if end > len(textRunes) {
		end = len(textRunes)
	}

	return string(textRunes[:start]) + markOpen + string(textRunes[start:end]) + markClose + string(textRunes[end:])
}
