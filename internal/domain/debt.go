package domain

import "time"

// DebtStatus is the closed set of debt statuses used across the Debtster
// platform. The values are the platform's fixed Hebrew strings and are stored
// verbatim in the database, so they are compared as opaque strings here.
type DebtStatus string

const (
	StatusActive    DebtStatus = "פעיל"
	StatusClosed    DebtStatus = "סגור"
	StatusInProcess DebtStatus = "בטיפול"
	StatusSuspended DebtStatus = "מושהה"
)

// CollectionAction is a kind of collection step an agent can take.
type CollectionAction string

const (
	ActionCall    CollectionAction = "call"
	ActionEmail   CollectionAction = "email"
	ActionMeeting CollectionAction = "meeting"
	ActionLegal   CollectionAction = "legal"
)

// Actions lists all collection actions in evaluation order.
var Actions = []CollectionAction{ActionCall, ActionEmail, ActionMeeting, ActionLegal}

// DebtRecord is one customer's debt as the dashboard sees it. The engines
// treat it as read-only; remaining_debt = debt_amount - paid_amount is
// expected from upstream and not re-validated here.
type DebtRecord struct {
	CustomerID      string     `json:"customer_id"`
	CustomerName    string     `json:"customer_name"`
	IDNumber        string     `json:"id_number"`
	DebtAmount      float64    `json:"debt_amount"`
	PaidAmount      float64    `json:"paid_amount"`
	RemainingDebt   float64    `json:"remaining_debt"`
	DueDate         time.Time  `json:"due_date"`
	Status          DebtStatus `json:"status"`
	CollectionAgent string     `json:"collection_agent"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SearchResult is one ranked match. Record is a shared reference into the
// caller's slice, not a copy.
type SearchResult struct {
	Record        *DebtRecord       `json:"record"`
	Score         float64           `json:"score"`
	MatchedFields []string          `json:"matched_fields"`
	Highlights    map[string]string `json:"highlights"`
}

// SearchSummary aggregates one search call for display.
type SearchSummary struct {
	TotalResults     int      `json:"total_results"`
	AvgScore         float64  `json:"avg_score"`
	TopMatchedFields []string `json:"top_matched_fields"`
	SearchTimeMS     int64    `json:"search_time_ms"`
}

// CustomerAssessment is the normalized multi-factor risk profile of one debt
// record. Individual scores are nominally in [0,1] but are deliberately left
// unclamped at the edges (negative ages, overpayment); see the recommend
// package.
type CustomerAssessment struct {
	DebtAgeScore               float64 `json:"debt_age_score"`
	AmountScore                float64 `json:"amount_score"`
	PaymentHistoryScore        float64 `json:"payment_history_score"`
	ContactResponsivenessScore float64 `json:"contact_responsiveness_score"`
	OverallRiskScore           float64 `json:"overall_risk_score"`
}

// Recommendation is one suggested collection action for one customer.
type Recommendation struct {
	CustomerID       string           `json:"customer_id"`
	Action           CollectionAction `json:"action"`
	Priority         float64          `json:"priority"`
	Reason           string           `json:"reason"`
	EstimatedSuccess float64          `json:"estimated_success"`
}

// AgentSummary groups recommendations by the collection agent assigned to the
// underlying records.
type AgentSummary struct {
	Agent           string           `json:"agent"`
	Recommendations []Recommendation `json:"recommendations"`
	TotalDebt       float64          `json:"total_debt"`
}
