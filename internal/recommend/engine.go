package recommend

import (
	"sort"
	"time"

	"debtster-insights/internal/domain"
)

// minPriority is the cutoff below which an action is not worth surfacing.
const minPriority = 3

// defaultMaxRecommendations bounds a bulk pass when the caller passes no
// limit.
const defaultMaxRecommendations = 50

// ForCustomer evaluates all four actions for one record and returns those
// with priority >= 3, highest first. Unlike Bulk, it considers records of
// every status.
func ForCustomer(record *domain.DebtRecord, w Weights, now time.Time) []domain.Recommendation {
	assessment := Assess(record, now)

	var recommendations []domain.Recommendation
	for _, action := range domain.Actions {
		priority := ActionPriority(record, action, assessment, w, now)
		if priority < minPriority {
			continue
		}
		recommendations = append(recommendations, domain.Recommendation{
			CustomerID:       record.CustomerID,
			Action:           action,
			Priority:         priority,
			Reason:           Reason(record, action, assessment, now),
			EstimatedSuccess: EstimatedSuccess(record, action, assessment, now),
		})
	}

	sortByPriority(recommendations)
	return recommendations
}

// Bulk generates recommendations across a record set, considering only
// active and in-process debts, and returns the top maxRecommendations by
// priority.
func Bulk(records []domain.DebtRecord, maxRecommendations int, w Weights, now time.Time) []domain.Recommendation {
	if maxRecommendations <= 0 {
		maxRecommendations = defaultMaxRecommendations
	}

	var all []domain.Recommendation
	for i := range records {
		record := &records[i]
		if record.Status != domain.StatusActive && record.Status != domain.StatusInProcess {
			continue
		}
		all = append(all, ForCustomer(record, w, now)...)
	}

	sortByPriority(all)

	if len(all) > maxRecommendations {
		all = all[:maxRecommendations]
	}
	return all
}

func sortByPriority(recommendations []domain.Recommendation) {
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority > recommendations[j].Priority
	})
}

// SummarizeByAgent groups recommendations by the collection agent of the
// underlying record. A customer with several recommended actions adds their
// remaining debt to the agent total once per recommendation; the dashboard
// displays the total that way, so the double-counting is kept.
func SummarizeByAgent(records []domain.DebtRecord, recommendations []domain.Recommendation) map[string]*domain.AgentSummary {
	byID := make(map[string]*domain.DebtRecord, len(records))
	for i := range records {
		if _, ok := byID[records[i].CustomerID]; !ok {
			byID[records[i].CustomerID] = &records[i]
		}
	}

	summaries := make(map[string]*domain.AgentSummary)
	for _, rec := range recommendations {
		record, ok := byID[rec.CustomerID]
		if !ok {
			continue
		}

		agent := record.CollectionAgent
		summary, ok := summaries[agent]
		if !ok {
			summary = &domain.AgentSummary{Agent: agent}
			summaries[agent] = summary
		}

		summary.Recommendations = append(summary.Recommendations, rec)
		summary.TotalDebt += record.RemainingDebt
	}

	return summaries
}

// BusinessDayFunc reports whether live customer contact is appropriate at a
// given moment. The calendar package provides the platform's implementation.
type BusinessDayFunc func(t time.Time) bool

// FilterTimeAppropriate drops actions requiring live contact when now is not
// a business day, keeping only email and legal action. On business days the
// input is returned unchanged.
func FilterTimeAppropriate(recommendations []domain.Recommendation, now time.Time, isBusinessDay BusinessDayFunc) []domain.Recommendation {
	if isBusinessDay == nil || isBusinessDay(now) {
		return recommendations
	}

	var filtered []domain.Recommendation
	for _, rec := range recommendations {
		if rec.Action == domain.ActionEmail || rec.Action == domain.ActionLegal {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
