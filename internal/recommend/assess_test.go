package recommend

import (
	"math"
	"testing"
	"time"

	"debtster-insights/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestAgeDays(t *testing.T) {
	if got := AgeDays(testNow, daysAgo(200)); got != 200 {
		t.Fatalf("AgeDays = %d; want 200", got)
	}
	if got := AgeDays(testNow, testNow); got != 0 {
		t.Fatalf("AgeDays of now = %d; want 0", got)
	}
	if got := AgeDays(testNow, testNow.AddDate(0, 0, 30)); got != -30 {
		t.Fatalf("AgeDays of future date = %d; want -30", got)
	}
}

func TestAssess_SaturatedScores(t *testing.T) {
	record := &domain.DebtRecord{
		CustomerID:    "CUST_001",
		Status:        domain.StatusActive,
		DueDate:       daysAgo(200),
		DebtAmount:    600000,
		PaidAmount:    0,
		RemainingDebt: 600000,
	}

	a := Assess(record, testNow)
	if a.DebtAgeScore != 1.0 {
		t.Fatalf("debt age score = %v; want clamp to 1", a.DebtAgeScore)
	}
	if a.AmountScore != 1.0 {
		t.Fatalf("amount score = %v; want clamp to 1", a.AmountScore)
	}
	if a.PaymentHistoryScore != 0 {
		t.Fatalf("payment history score = %v; want 0", a.PaymentHistoryScore)
	}
	if a.ContactResponsivenessScore != 0.5 {
		t.Fatalf("responsiveness = %v; want default 0.5", a.ContactResponsivenessScore)
	}
	// 0.4*1 + 0.3*1 + 0.2*1 + 0.1*0.5
	if want := 0.95; math.Abs(a.OverallRiskScore-want) > 1e-9 {
		t.Fatalf("overall risk = %v; want %v", a.OverallRiskScore, want)
	}
}

func TestAssess_NegativeAgeUnclamped(t *testing.T) {
	// Not-yet-due debt: age is negative and the score is deliberately left
	// unclamped below zero.
	record := &domain.DebtRecord{
		DueDate:       testNow.AddDate(0, 0, 90),
		DebtAmount:    1000,
		RemainingDebt: 1000,
	}

	a := Assess(record, testNow)
	if want := -0.5; math.Abs(a.DebtAgeScore-want) > 1e-9 {
		t.Fatalf("debt age score = %v; want unclamped %v", a.DebtAgeScore, want)
	}
}

func TestAssess_OverpaymentUnclamped(t *testing.T) {
	// Overpayment: ratio above 1 is preserved, not clamped.
	record := &domain.DebtRecord{
		DueDate:    daysAgo(10),
		DebtAmount: 1000,
		PaidAmount: 1500,
	}

	a := Assess(record, testNow)
	if a.PaymentHistoryScore != 1.5 {
		t.Fatalf("payment history score = %v; want unclamped 1.5", a.PaymentHistoryScore)
	}
}

func TestAssess_ZeroDebtAmount(t *testing.T) {
	record := &domain.DebtRecord{DueDate: daysAgo(10)}
	a := Assess(record, testNow)
	if a.PaymentHistoryScore != 0 {
		t.Fatalf("payment history score = %v; want 0 for zero debt", a.PaymentHistoryScore)
	}
}

func TestAssess_Responsiveness(t *testing.T) {
	paid := daysAgo(30)
	record := &domain.DebtRecord{
		DueDate:         daysAgo(60),
		DebtAmount:      1000,
		PaidAmount:      500,
		LastPaymentDate: &paid,
	}

	a := Assess(record, testNow)
	if want := 0.5; math.Abs(a.ContactResponsivenessScore-want) > 1e-9 {
		t.Fatalf("responsiveness = %v; want %v", a.ContactResponsivenessScore, want)
	}

	// Payments older than the 60-day window floor at zero.
	old := daysAgo(90)
	record.LastPaymentDate = &old
	a = Assess(record, testNow)
	if a.ContactResponsivenessScore != 0 {
		t.Fatalf("responsiveness = %v; want floor at 0", a.ContactResponsivenessScore)
	}
}
