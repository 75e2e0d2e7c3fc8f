package recommend

import (
	"time"

	"debtster-insights/internal/domain"
)

// actionSuccessRates are baseline historical success rates per action and
// status. Legal action runs higher across the board — the leverage works even
// on suspended debts. Statuses missing from a table fall back to
// fallbackSuccessRate.
var actionSuccessRates = map[domain.CollectionAction]map[domain.DebtStatus]float64{
	domain.ActionCall: {
		domain.StatusActive:    0.65,
		domain.StatusInProcess: 0.45,
		domain.StatusSuspended: 0.25,
		domain.StatusClosed:    0.1,
	},
	domain.ActionEmail: {
		domain.StatusActive:    0.35,
		domain.StatusInProcess: 0.25,
		domain.StatusSuspended: 0.15,
		domain.StatusClosed:    0.05,
	},
	domain.ActionMeeting: {
		domain.StatusActive:    0.75,
		domain.StatusInProcess: 0.60,
		domain.StatusSuspended: 0.30,
		domain.StatusClosed:    0.05,
	},
	domain.ActionLegal: {
		domain.StatusActive:    0.80,
		domain.StatusInProcess: 0.70,
		domain.StatusSuspended: 0.85,
		domain.StatusClosed:    0.20,
	},
}

const fallbackSuccessRate = 0.3

// EstimatedSuccess returns the estimated success percentage of an action,
// clamped to [5,100]: the baseline table rate adjusted for responsiveness,
// payment history and debt age.
func EstimatedSuccess(record *domain.DebtRecord, action domain.CollectionAction, assessment domain.CustomerAssessment, now time.Time) float64 {
	rate := fallbackSuccessRate
	if byStatus, ok := actionSuccessRates[action]; ok {
		if r, ok := byStatus[record.Status]; ok {
			rate = r
		}
	}

	if assessment.ContactResponsivenessScore > 0.7 {
		rate *= 1.3
	} else if assessment.ContactResponsivenessScore < 0.3 {
		rate *= 0.7
	}

	if assessment.PaymentHistoryScore > 0.5 {
		rate *= 1.2
	} else if assessment.PaymentHistoryScore < 0.2 {
		rate *= 0.8
	}

	debtAge := AgeDays(now, record.DueDate)
	if debtAge > 120 {
		rate *= 0.8
	} else if debtAge < 30 {
		rate *= 1.1
	}

	percent := rate * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 5 {
		percent = 5
	}
	return percent
}
