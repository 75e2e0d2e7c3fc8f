package recommend

import (
	"testing"

	"debtster-insights/internal/domain"
)

func severeRecord() *domain.DebtRecord {
	// 200 days overdue, nothing paid, large amount.
	return &domain.DebtRecord{
		CustomerID:    "CUST_100",
		Status:        domain.StatusActive,
		DueDate:       daysAgo(200),
		DebtAmount:    600000,
		PaidAmount:    0,
		RemainingDebt: 600000,
	}
}

func TestActionPriority_Bounds(t *testing.T) {
	records := []*domain.DebtRecord{
		severeRecord(),
		{DueDate: testNow.AddDate(0, 0, 60), DebtAmount: 100, PaidAmount: 200},
		{Status: domain.StatusSuspended, DueDate: daysAgo(400), RemainingDebt: 2000000},
	}

	for _, record := range records {
		a := Assess(record, testNow)
		for _, action := range domain.Actions {
			p := ActionPriority(record, action, a, DefaultWeights, testNow)
			if p > 10 {
				t.Fatalf("priority %v exceeds 10 for action %s", p, action)
			}
		}
	}
}

func TestActionPriority_LegalHighestForSevereDebt(t *testing.T) {
	record := severeRecord()
	a := Assess(record, testNow)

	legal := ActionPriority(record, domain.ActionLegal, a, DefaultWeights, testNow)
	for _, action := range []domain.CollectionAction{domain.ActionCall, domain.ActionEmail, domain.ActionMeeting} {
		p := ActionPriority(record, action, a, DefaultWeights, testNow)
		if legal <= p {
			t.Fatalf("legal priority %v should exceed %s priority %v", legal, action, p)
		}
	}
}

func TestActionPriority_StatusMultiplier(t *testing.T) {
	active := severeRecord()
	closed := severeRecord()
	closed.Status = domain.StatusClosed
	suspended := severeRecord()
	suspended.Status = domain.StatusSuspended

	aActive := Assess(active, testNow)
	aClosed := Assess(closed, testNow)
	aSuspended := Assess(suspended, testNow)

	pActive := ActionPriority(active, domain.ActionLegal, aActive, DefaultWeights, testNow)
	pClosed := ActionPriority(closed, domain.ActionLegal, aClosed, DefaultWeights, testNow)
	pSuspended := ActionPriority(suspended, domain.ActionLegal, aSuspended, DefaultWeights, testNow)

	if pClosed >= pActive {
		t.Fatalf("closed debt priority %v should be far below active %v", pClosed, pActive)
	}
	if pSuspended < pActive {
		t.Fatalf("suspended debt priority %v should be at least active %v", pSuspended, pActive)
	}
}

func TestActionPriority_CallAgeBuckets(t *testing.T) {
	// The 31-60 day bucket is the sweet spot for calls.
	fresh := &domain.DebtRecord{Status: domain.StatusActive, DueDate: daysAgo(10), DebtAmount: 30000, RemainingDebt: 30000}
	sweet := &domain.DebtRecord{Status: domain.StatusActive, DueDate: daysAgo(45), DebtAmount: 30000, RemainingDebt: 30000}

	pFresh := ActionPriority(fresh, domain.ActionCall, Assess(fresh, testNow), DefaultWeights, testNow)
	pSweet := ActionPriority(sweet, domain.ActionCall, Assess(sweet, testNow), DefaultWeights, testNow)

	if pSweet <= pFresh {
		t.Fatalf("expected 45-day debt call priority %v above 10-day %v", pSweet, pFresh)
	}
}

func TestActionPriority_UnknownStatusPassesThrough(t *testing.T) {
	record := severeRecord()
	record.Status = "לא ידוע"
	a := Assess(record, testNow)
	known := severeRecord()
	aKnown := Assess(known, testNow)

	p := ActionPriority(record, domain.ActionLegal, a, DefaultWeights, testNow)
	pKnown := ActionPriority(known, domain.ActionLegal, aKnown, DefaultWeights, testNow)
	if p != pKnown {
		t.Fatalf("unknown status should multiply by 1.0: got %v want %v", p, pKnown)
	}
}
