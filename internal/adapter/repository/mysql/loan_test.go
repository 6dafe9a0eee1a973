package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	loanDomain "nexo-backend/internal/domain/loan"
	"nexo-backend/pkg/code"
	"nexo-backend/pkg/id"
)

type loanSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	LoanCode        string     `gorm:"size:32;uniqueIndex;column:loan_code"`
	BorrowerID      string     `gorm:"size:32;column:borrower_id;index"`
	Title           string     `gorm:"size:255;column:title"`
	Description     string     `gorm:"column:description"`
	RequestedAmount string     `gorm:"column:requested_amount"`
	FundedAmount    string     `gorm:"column:funded_amount"`
	InterestRate    string     `gorm:"column:interest_rate"`
	PlatformFeeRate string     `gorm:"column:platform_fee_rate"`
	TermMonths      int        `gorm:"column:term_months"`
	Status          string     `gorm:"size:20;column:status;index"`
	FundingDeadline *time.Time `gorm:"column:funding_deadline"`
	DisbursedAt     *time.Time `gorm:"column:disbursed_at"`
	MaturityDate    *time.Time `gorm:"column:maturity_date"`
	ReviewedBy      string     `gorm:"size:32;column:reviewed_by"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	TotalRepaid     string     `gorm:"column:total_repaid"`
	TotalInterest   string     `gorm:"column:total_interest_paid"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

func openLoanTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(borrowerID string, status loanDomain.Status) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanCode:        code.Loan(),
		BorrowerID:      borrowerID,
		Title:           "Working capital",
		RequestedAmount: dec("10000000"),
		FundedAmount:    dec("0"),
		InterestRate:    dec("12.00"),
		PlatformFeeRate: dec("2.00"),
		TermMonths:      12,
		Status:          status,
		TotalRepaid:     dec("0"),
		TotalInterest:   dec("0"),
	}
}

func TestLoan_CreateAndGetByLoanCode(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), loanDomain.StatusDraft)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanCode(ctx, l.LoanCode)
	if err != nil {
		t.Fatalf("GetByLoanCode: %v", err)
	}
	if got.BorrowerID != l.BorrowerID || got.Status != loanDomain.StatusDraft {
		t.Errorf("unexpected loan: %+v", got)
	}
	if !got.RequestedAmount.Equal(dec("10000000")) || got.TermMonths != 12 {
		t.Errorf("terms not preserved: %+v", got)
	}

	byID, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.LoanCode != l.LoanCode {
		t.Errorf("GetByID mismatch: %+v", byID)
	}
}

func TestLoan_SaveUpdates(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), loanDomain.StatusFunding)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.FundedAmount = dec("6000000")
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanCode(ctx, l.LoanCode)
	if err != nil {
		t.Fatalf("GetByLoanCode: %v", err)
	}
	if !got.FundedAmount.Equal(dec("6000000")) {
		t.Errorf("FundedAmount = %s, want 6000000", got.FundedAmount)
	}
	if !got.RemainingCapacity().Equal(dec("4000000")) {
		t.Errorf("RemainingCapacity = %s, want 4000000", got.RemainingCapacity())
	}
}

func TestLoan_GetByLoanCode_NotFound(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanCode(context.Background(), "LN-NOPE")
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected loan ErrNotFound, got %v", err)
	}
}

func TestLoan_GetPendingByBorrowerID(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	borrower := id.NewID32()

	// active loans do not block a new application
	if err := repo.Create(ctx, makeLoan(borrower, loanDomain.StatusActive)); err != nil {
		t.Fatal(err)
	}
	pending := makeLoan(borrower, loanDomain.StatusFunding)
	if err := repo.Create(ctx, pending); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetPendingByBorrowerID(ctx, borrower)
	if err != nil {
		t.Fatalf("GetPendingByBorrowerID: %v", err)
	}
	if got.LoanCode != pending.LoanCode {
		t.Errorf("unexpected loan: %+v", got)
	}

	// the "no pending loan" signal is the raw gorm error, which the loan
	// usecase inspects directly.
	_, err = repo.GetPendingByBorrowerID(ctx, id.NewID32())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoan_ListByStatus(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, makeLoan(id.NewID32(), loanDomain.StatusFunding)); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Create(ctx, makeLoan(id.NewID32(), loanDomain.StatusDraft)); err != nil {
		t.Fatal(err)
	}

	funding, err := repo.ListByStatus(ctx, loanDomain.StatusFunding, 0, 0)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(funding) != 3 {
		t.Fatalf("len = %d, want 3", len(funding))
	}
	// newest first
	if funding[0].ID < funding[2].ID {
		t.Errorf("expected descending order, got IDs %d .. %d", funding[0].ID, funding[2].ID)
	}

	page, err := repo.ListByStatus(ctx, loanDomain.StatusFunding, 2, 1)
	if err != nil {
		t.Fatalf("ListByStatus paged: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page len = %d, want 2", len(page))
	}
}
