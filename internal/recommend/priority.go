package recommend

import (
	"math"
	"time"

	"debtster-insights/internal/domain"
)

// Weights blends the assessment factors into an action priority. All five
// should sum to about 1; DefaultWeights is the dashboard's tuning.
type Weights struct {
	DebtAge        float64 `json:"debt_age_weight"`
	Amount         float64 `json:"amount_weight"`
	PaymentHistory float64 `json:"payment_history_weight"`
	ContactHistory float64 `json:"contact_history_weight"`
	SuccessRate    float64 `json:"success_rate_weight"`
}

var DefaultWeights = Weights{
	DebtAge:        0.3,
	Amount:         0.25,
	PaymentHistory: 0.2,
	ContactHistory: 0.15,
	SuccessRate:    0.1,
}

// statusMultipliers scales priority by debt status. Suspended debts score
// above active ones: a suspension is usually waiting on exactly this kind of
// decision. Unknown statuses pass through unscaled.
var statusMultipliers = map[domain.DebtStatus]float64{
	domain.StatusActive:    1.0,
	domain.StatusInProcess: 0.8,
	domain.StatusSuspended: 1.2,
	domain.StatusClosed:    0.1,
}

// ActionPriority scores one candidate action for one record in [0,10],
// higher meaning more urgent/valuable.
func ActionPriority(record *domain.DebtRecord, action domain.CollectionAction, assessment domain.CustomerAssessment, w Weights, now time.Time) float64 {
	baseScore := actionBaseScore(record, action, assessment, now)

	statusMultiplier, ok := statusMultipliers[record.Status]
	if !ok {
		statusMultiplier = 1.0
	}

	weighted := baseScore * (assessment.DebtAgeScore*w.DebtAge +
		assessment.AmountScore*w.Amount +
		(1-assessment.PaymentHistoryScore)*w.PaymentHistory +
		(1-assessment.ContactResponsivenessScore)*w.ContactHistory +
		assessment.OverallRiskScore*w.SuccessRate)

	return math.Min(10, weighted*statusMultiplier*10)
}

// actionBaseScore is the hand-tuned suitability of an action for a record,
// bucketed on debt age or remaining amount.
func actionBaseScore(record *domain.DebtRecord, action domain.CollectionAction, assessment domain.CustomerAssessment, now time.Time) float64 {
	debtAge := AgeDays(now, record.DueDate)

	var base float64

	switch action {
	case domain.ActionCall:
		// Calls work best on fresh to mid-aged debts.
		switch {
		case debtAge <= 30:
			base = 0.8
		case debtAge <= 60:
			base = 0.9
		case debtAge <= 90:
			base = 0.7
		default:
			base = 0.5
		}
		if assessment.ContactResponsivenessScore > 0.7 {
			base *= 1.2
		}

	case domain.ActionEmail:
		// Email suits small debts and reminders.
		switch {
		case record.RemainingDebt < 10000:
			base = 0.7
		case record.RemainingDebt < 50000:
			base = 0.5
		default:
			base = 0.3
		}
		if assessment.ContactResponsivenessScore < 0.3 {
			base *= 0.5
		}

	case domain.ActionMeeting:
		// Meetings pay off on large debts with payment potential.
		switch {
		case record.RemainingDebt > 50000 && assessment.PaymentHistoryScore > 0.3:
			base = 0.85
		case record.RemainingDebt > 20000:
			base = 0.6
		default:
			base = 0.3
		}
		if debtAge > 120 {
			base *= 0.7
		}

	case domain.ActionLegal:
		// Legal action for old or large debts.
		switch {
		case debtAge > 90 || record.RemainingDebt > 100000:
			base = 0.8
		case debtAge > 60:
			base = 0.6
		default:
			base = 0.2
		}
		if assessment.ContactResponsivenessScore < 0.3 {
			base *= 1.3
		}
	}

	return base
}
