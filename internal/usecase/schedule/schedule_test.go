package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEMI_TwelveMillionTwelvePercent(t *testing.T) {
	got := EMI(dec("12000000.00"), dec("12.00"), 12)
	if !got.Equal(dec("1066185.46")) {
		t.Fatalf("EMI = %s, want 1066185.46", got)
	}
}

func TestEMI_ZeroRate(t *testing.T) {
	got := EMI(dec("1200000.00"), dec("0.00"), 12)
	if !got.Equal(dec("100000.00")) {
		t.Fatalf("EMI = %s, want 100000.00", got)
	}
}

func TestBuild_TwelveMillionTwelvePercent(t *testing.T) {
	disbursed := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	rows, err := Build(dec("12000000.00"), dec("12.00"), 12, disbursed)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("len(rows) = %d, want 12", len(rows))
	}

	first := rows[0]
	if !first.InterestAmount.Equal(dec("120000.00")) {
		t.Errorf("row1 interest = %s, want 120000.00", first.InterestAmount)
	}
	if !first.PrincipalAmount.Equal(dec("946185.46")) {
		t.Errorf("row1 principal = %s, want 946185.46", first.PrincipalAmount)
	}
	if !first.TotalAmount.Equal(dec("1066185.46")) {
		t.Errorf("row1 total = %s, want 1066185.46", first.TotalAmount)
	}
	if got := first.DueDate; !got.Equal(disbursed.AddDate(0, 1, 0)) {
		t.Errorf("row1 due = %s, want one month after disbursement", got)
	}

	// The last installment absorbs rounding drift.
	last := rows[11]
	if !last.PrincipalAmount.Equal(dec("1055629.23")) {
		t.Errorf("row12 principal = %s, want 1055629.23", last.PrincipalAmount)
	}
	if !last.TotalAmount.Equal(dec("1066185.52")) {
		t.Errorf("row12 total = %s, want 1066185.52", last.TotalAmount)
	}
	if !last.RemainingPrincipal.IsZero() {
		t.Errorf("row12 remaining = %s, want 0", last.RemainingPrincipal)
	}

	// Principals reconstruct the principal exactly.
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.PrincipalAmount)
	}
	if !sum.Equal(dec("12000000.00")) {
		t.Errorf("sum of principals = %s, want 12000000.00", sum)
	}

	// Every installment except the last charges the constant EMI.
	for _, r := range rows[:11] {
		if !r.TotalAmount.Equal(dec("1066185.46")) {
			t.Errorf("row%d total = %s, want constant EMI", r.InstallmentNumber, r.TotalAmount)
		}
	}
}

func TestBuild_ZeroRate(t *testing.T) {
	rows, err := Build(dec("1200000.00"), dec("0.00"), 12, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, r := range rows {
		if !r.InterestAmount.IsZero() {
			t.Errorf("row%d interest = %s, want 0", r.InstallmentNumber, r.InterestAmount)
		}
		if !r.TotalAmount.Equal(dec("100000.00")) {
			t.Errorf("row%d total = %s, want 100000.00", r.InstallmentNumber, r.TotalAmount)
		}
	}
}

func TestBuild_MonthlyDueDates(t *testing.T) {
	disbursed := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	rows, err := Build(dec("5000000.00"), dec("10.00"), 3, disbursed)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []time.Time{
		disbursed.AddDate(0, 1, 0),
		disbursed.AddDate(0, 1, 0).AddDate(0, 1, 0),
		disbursed.AddDate(0, 1, 0).AddDate(0, 1, 0).AddDate(0, 1, 0),
	}
	for i, r := range rows {
		if !r.DueDate.Equal(want[i]) {
			t.Errorf("row%d due = %s, want %s", i+1, r.DueDate, want[i])
		}
	}
}

func TestBuild_InvalidInput(t *testing.T) {
	if _, err := Build(dec("1000.00"), dec("10.00"), 0, time.Now()); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("zero term err = %v, want ErrInvalidTerm", err)
	}
	if _, err := Build(dec("0"), dec("10.00"), 12, time.Now()); err == nil {
		t.Error("zero principal should error")
	}
	if _, err := Build(dec("1000.00"), dec("-1.00"), 12, time.Now()); err == nil {
		t.Error("negative rate should error")
	}
}
