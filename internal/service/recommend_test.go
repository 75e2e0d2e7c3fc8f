package service

import (
	"context"
	"testing"
	"time"

	"debtster-insights/internal/domain"
)

// overdueRecords are old enough that at least one action clears the cutoff.
func overdueRecords() []domain.DebtRecord {
	due := time.Now().AddDate(0, 0, -200)
	return []domain.DebtRecord{
		{
			CustomerID:      "CUST_001",
			CustomerName:    "ישראל ישראלי",
			Status:          domain.StatusActive,
			DueDate:         due,
			DebtAmount:      600000,
			RemainingDebt:   600000,
			CollectionAgent: "משה כהן",
		},
		{
			CustomerID:    "CUST_002",
			CustomerName:  "שרה לוי",
			Status:        domain.StatusClosed,
			DueDate:       due,
			DebtAmount:    900000,
			RemainingDebt: 900000,
		},
	}
}

func TestRecommendService_ForCustomer(t *testing.T) {
	svc := NewRecommendService(&fakeDebtsRepo{records: overdueRecords()}, nil, 50)

	recs, err := svc.ForCustomer(context.Background(), "CUST_001", false)
	if err != nil {
		t.Fatalf("ForCustomer: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations for overdue debt")
	}
	for _, rec := range recs {
		if rec.CustomerID != "CUST_001" {
			t.Fatalf("wrong customer in %+v", rec)
		}
	}
}

func TestRecommendService_ForCustomerNotFound(t *testing.T) {
	svc := NewRecommendService(&fakeDebtsRepo{}, nil, 50)

	if _, err := svc.ForCustomer(context.Background(), "GHOST", false); err == nil {
		t.Fatal("expected error for unknown customer")
	}
}

func TestRecommendService_BulkSkipsClosed(t *testing.T) {
	svc := NewRecommendService(&fakeDebtsRepo{records: overdueRecords()}, nil, 50)

	recs, err := svc.Bulk(context.Background(), 0, false)
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected bulk recommendations")
	}
	for _, rec := range recs {
		if rec.CustomerID == "CUST_002" {
			t.Fatalf("closed debt leaked into bulk queue: %+v", rec)
		}
	}
}

func TestRecommendService_OnlyActionable(t *testing.T) {
	svc := NewRecommendService(&fakeDebtsRepo{records: overdueRecords()}, nil, 50)
	// pin the clock to a Saturday so live-contact actions get filtered
	svc.now = func() time.Time { return time.Date(2025, 6, 14, 11, 0, 0, 0, time.UTC) }

	recs, err := svc.Bulk(context.Background(), 0, true)
	if err != nil {
		t.Fatalf("Bulk: %v", err)
	}
	for _, rec := range recs {
		if rec.Action == domain.ActionCall || rec.Action == domain.ActionMeeting {
			t.Fatalf("live-contact action %s must be filtered on Saturday", rec.Action)
		}
	}
}

func TestRecommendService_AgentSummaries(t *testing.T) {
	svc := NewRecommendService(&fakeDebtsRepo{records: overdueRecords()}, nil, 50)

	summaries, err := svc.AgentSummaries(context.Background())
	if err != nil {
		t.Fatalf("AgentSummaries: %v", err)
	}
	summary, ok := summaries["משה כהן"]
	if !ok {
		t.Fatalf("missing agent summary, got %v", summaries)
	}
	if len(summary.Recommendations) == 0 {
		t.Fatal("expected recommendations in agent summary")
	}
}

func TestRecommendService_AgentsUnconfigured(t *testing.T) {
	svc := NewRecommendService(&fakeDebtsRepo{}, nil, 50)

	if _, err := svc.Agents(context.Background()); err == nil {
		t.Fatal("expected error when agent repository is not configured")
	}
}
