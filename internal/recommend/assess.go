// Package recommend implements the rule-based collection recommendation
// engine: a multi-factor risk assessment per debt record, a tunable 0-10
// priority score per candidate action, estimated success rates, and
// human-readable reasons, plus bulk generation and per-agent summaries.
//
// All functions are pure over their inputs; the current time is always an
// explicit parameter so age calculations are deterministic under test.
package recommend

import (
	"math"
	"time"

	"debtster-insights/internal/domain"
)

// Tuning constants for the risk assessment.
const (
	// debtAgeCapDays is the age at which the debt-age score saturates.
	debtAgeCapDays = 180
	// amountCap is the remaining debt, in ILS, at which the amount score
	// saturates.
	amountCap = 500000
	// responsivenessWindowDays is how long a payment counts towards
	// responsiveness, decaying linearly.
	responsivenessWindowDays = 60
	// defaultResponsiveness is assumed when a customer has never paid.
	defaultResponsiveness = 0.5
)

// AgeDays returns the whole number of days between t and now, negative when t
// is in the future.
func AgeDays(now, t time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

// Assess computes the risk/readiness profile of one debt record at the given
// moment.
//
// Known quirks preserved from the dashboard's tuning, on purpose:
// DebtAgeScore goes negative for not-yet-due debts (no lower clamp), and
// PaymentHistoryScore exceeds 1 on overpayment (no upper clamp). Both feed
// the priority formula as-is.
func Assess(record *domain.DebtRecord, now time.Time) domain.CustomerAssessment {
	debtAge := AgeDays(now, record.DueDate)

	debtAgeScore := math.Min(1, float64(debtAge)/debtAgeCapDays)
	amountScore := math.Min(1, record.RemainingDebt/amountCap)

	var paymentHistoryScore float64
	if record.DebtAmount > 0 {
		paymentHistoryScore = record.PaidAmount / record.DebtAmount
	}

	responsiveness := defaultResponsiveness
	if record.LastPaymentDate != nil {
		daysSincePayment := AgeDays(now, *record.LastPaymentDate)
		responsiveness = math.Max(0, 1-float64(daysSincePayment)/responsivenessWindowDays)
	}

	overall := debtAgeScore*0.4 +
		amountScore*0.3 +
		(1-paymentHistoryScore)*0.2 +
		(1-responsiveness)*0.1

	return domain.CustomerAssessment{
		DebtAgeScore:               debtAgeScore,
		AmountScore:                amountScore,
		PaymentHistoryScore:        paymentHistoryScore,
		ContactResponsivenessScore: responsiveness,
		OverallRiskScore:           overall,
	}
}
