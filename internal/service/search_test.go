package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"debtster-insights/internal/domain"
	"debtster-insights/internal/repository"
	"debtster-insights/internal/search"
)

type fakeDebtsRepo struct {
	records []domain.DebtRecord
	err     error
}

func (f *fakeDebtsRepo) List(ctx context.Context, _ repository.DebtsFilter) ([]domain.DebtRecord, error) {
	return f.records, f.err
}

func (f *fakeDebtsRepo) GetByCustomerID(ctx context.Context, customerID string) (*domain.DebtRecord, error) {
	for i := range f.records {
		if f.records[i].CustomerID == customerID {
			return &f.records[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func sampleRecords() []domain.DebtRecord {
	due := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return []domain.DebtRecord{
		{
			CustomerID:      "CUST_001",
			CustomerName:    "ישראל ישראלי",
			IDNumber:        "123456789",
			Phone:           "050-1234567",
			Status:          domain.StatusActive,
			DueDate:         due,
			DebtAmount:      50000,
			RemainingDebt:   40000,
			CollectionAgent: "משה כהן",
		},
		{
			CustomerID:      "CUST_002",
			CustomerName:    "שרה לוי",
			IDNumber:        "987654321",
			Phone:           "050-1234567",
			Status:          domain.StatusInProcess,
			DueDate:         due,
			DebtAmount:      20000,
			RemainingDebt:   15000,
			CollectionAgent: "רחל אברהם",
		},
	}
}

func TestSearchService_Search(t *testing.T) {
	svc := NewSearchService(&fakeDebtsRepo{records: sampleRecords()}, nil, 50, 0)

	resp, err := svc.Search(context.Background(), "ישראל", search.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if resp.Results[0].Record.CustomerID != "CUST_001" {
		t.Fatalf("unexpected top result %s", resp.Results[0].Record.CustomerID)
	}
	if resp.Summary.TotalResults != 1 {
		t.Fatalf("summary total = %d; want 1", resp.Summary.TotalResults)
	}
	if resp.Summary.SearchTimeMS < 0 {
		t.Fatalf("negative search time %d", resp.Summary.SearchTimeMS)
	}
}

func TestSearchService_DefaultMaxResults(t *testing.T) {
	// Both records share the phone number; the configured cap kicks in when
	// the request does not set its own.
	svc := NewSearchService(&fakeDebtsRepo{records: sampleRecords()}, nil, 1, 0)

	resp, err := svc.Search(context.Background(), "050-1234567", search.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected configured cap of 1, got %d", len(resp.Results))
	}

	resp, err = svc.Search(context.Background(), "050-1234567", search.Options{MaxResults: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("request cap should win: expected 2, got %d", len(resp.Results))
	}
}

func TestSearchService_AdvancedSearch(t *testing.T) {
	svc := NewSearchService(&fakeDebtsRepo{records: sampleRecords()}, nil, 50, 0)

	resp, err := svc.AdvancedSearch(context.Background(), "ישראל משה", search.Options{})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 combined result, got %d", len(resp.Results))
	}
	if resp.Results[0].Record.CustomerID != "CUST_001" {
		t.Fatalf("unexpected result %s", resp.Results[0].Record.CustomerID)
	}
}

func TestSearchService_RepoError(t *testing.T) {
	svc := NewSearchService(&fakeDebtsRepo{err: sql.ErrConnDone}, nil, 50, 0)

	if _, err := svc.Search(context.Background(), "ישראל", search.Options{}); err == nil {
		t.Fatal("expected repository error to propagate")
	}
}
