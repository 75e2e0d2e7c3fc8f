package recommend

import (
	"strings"
	"time"

	"debtster-insights/internal/domain"
)

const (
	reasonSeparator = " • "
	genericReason   = "המלצה מבוססת אלגוריתם"
)

// Reason assembles the human-readable justification for recommending an
// action: action-specific factors first, then the two cross-cutting risk
// factors, joined with a bullet separator. Evaluation order is fixed because
// it determines the string order. When no factor fires, a generic fallback is
// returned.
func Reason(record *domain.DebtRecord, action domain.CollectionAction, assessment domain.CustomerAssessment, now time.Time) string {
	debtAge := AgeDays(now, record.DueDate)
	amount := record.RemainingDebt

	var reasons []string

	switch action {
	case domain.ActionCall:
		if debtAge <= 30 {
			reasons = append(reasons, "חוב חדש - מתאים לקשר טלפוני")
		}
		if assessment.ContactResponsivenessScore > 0.7 {
			reasons = append(reasons, "לקוח מגיב טוב לפניות")
		}
		if amount >= 10000 && amount <= 50000 {
			reasons = append(reasons, "סכום מתאים לטיפול טלפוני")
		}

	case domain.ActionEmail:
		if amount < 10000 {
			reasons = append(reasons, "סכום קטן - מתאים לתזכורת באימייל")
		}
		if debtAge <= 45 {
			reasons = append(reasons, "חוב עדיין חדש - אימייל יכול להזכיר")
		}

	case domain.ActionMeeting:
		if amount > 50000 {
			reasons = append(reasons, "סכום גדול - מצדיק פגישה אישית")
		}
		if assessment.PaymentHistoryScore > 0.3 {
			reasons = append(reasons, "היסטוריית תשלומים חיובית")
		}
		if debtAge <= 90 {
			reasons = append(reasons, "עדיין בטווח זמן לפתרון ידידותי")
		}

	case domain.ActionLegal:
		if debtAge > 90 {
			reasons = append(reasons, "חוב ישן - דורש טיפול משפטי")
		}
		if amount > 100000 {
			reasons = append(reasons, "סכום משמעותי - מצדיק הליך משפטי")
		}
		if assessment.ContactResponsivenessScore < 0.3 {
			reasons = append(reasons, "לקוח לא מגיב - זקוק ללחץ משפטי")
		}
	}

	if assessment.OverallRiskScore > 0.7 {
		reasons = append(reasons, "לקוח בסיכון גבוה לאי תשלום")
	}
	if assessment.DebtAgeScore > 0.5 {
		reasons = append(reasons, "החוב מתיישן - דורש טיפול דחוף")
	}

	if len(reasons) == 0 {
		return genericReason
	}
	return strings.Join(reasons, reasonSeparator)
}
