package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loanDomain "nexo-backend/internal/domain/loan"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/internal/testutil/loanmock"
	"nexo-backend/internal/testutil/uowmock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

const (
	borrower = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	reviewer = "cccccccccccccccccccccccccccccccc"
)

func fixedNow() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }

func newUsecase(repos uow.Repos) *Usecase {
	uc := NewUsecase(uowmock.Passthrough(repos))
	uc.nowFn = fixedNow
	return uc
}

func TestCreate_Happy(t *testing.T) {
	var created *loanDomain.Loan
	loans := &loanmock.Repo{
		GetPendingByBorrowerIDFn: func(context.Context, string) (*loanDomain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, l *loanDomain.Loan) error {
			created = l
			return nil
		},
	}
	uc := newUsecase(uow.Repos{Loans: loans})

	l, err := uc.Create(context.Background(), CreateLoanInput{
		BorrowerID:   borrower,
		Title:        "Expand food stall",
		Amount:       dec("10000000.00"),
		InterestRate: dec("12.00"),
		TermMonths:   12,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || created != l {
		t.Fatal("loan not persisted through repository")
	}
	if l.Status != loanDomain.StatusDraft {
		t.Errorf("status = %s, want draft", l.Status)
	}
	if !l.PlatformFeeRate.Equal(DefaultPlatformFeeRate) {
		t.Errorf("fee rate = %s, want %s", l.PlatformFeeRate, DefaultPlatformFeeRate)
	}
	if l.LoanCode == "" {
		t.Error("loan code not assigned")
	}
}

func TestCreate_PendingExists(t *testing.T) {
	loans := &loanmock.Repo{
		GetPendingByBorrowerIDFn: func(context.Context, string) (*loanDomain.Loan, error) {
			return &loanDomain.Loan{Status: loanDomain.StatusFunding}, nil
		},
	}
	uc := newUsecase(uow.Repos{Loans: loans})

	_, err := uc.Create(context.Background(), CreateLoanInput{
		BorrowerID:   borrower,
		Amount:       dec("1000000.00"),
		InterestRate: dec("10.00"),
		TermMonths:   6,
	})
	if !errors.Is(err, loanDomain.ErrPendingExists) {
		t.Fatalf("err = %v, want ErrPendingExists", err)
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	uc := newUsecase(uow.Repos{})
	cases := []CreateLoanInput{
		{BorrowerID: borrower, Amount: dec("0"), InterestRate: dec("10.00"), TermMonths: 12},
		{BorrowerID: borrower, Amount: dec("1000.00"), InterestRate: dec("10.00"), TermMonths: 0},
		{BorrowerID: borrower, Amount: dec("1000.00"), InterestRate: dec("-1.00"), TermMonths: 12},
	}
	for i, in := range cases {
		if _, err := uc.Create(context.Background(), in); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func lockedLoanRepo(l *loanDomain.Loan) *loanmock.Repo {
	return &loanmock.Repo{
		GetByLoanCodeForUpdateFn: func(_ context.Context, code string) (*loanDomain.Loan, error) {
			if l != nil && l.LoanCode == code {
				return l, nil
			}
			return nil, loanDomain.ErrNotFound
		},
	}
}

func TestSubmit_OnlyBorrower(t *testing.T) {
	l := &loanDomain.Loan{LoanCode: "LON-1", BorrowerID: borrower, Status: loanDomain.StatusDraft}
	uc := newUsecase(uow.Repos{Loans: lockedLoanRepo(l)})

	if _, err := uc.Submit(context.Background(), "LON-1", reviewer); !errors.Is(err, repaymentDomain.ErrNotBorrower) {
		t.Fatalf("err = %v, want ErrNotBorrower", err)
	}

	got, err := uc.Submit(context.Background(), "LON-1", borrower)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Status != loanDomain.StatusPendingReview {
		t.Errorf("status = %s, want pending_review", got.Status)
	}
}

func TestCancel_AfterFundingOpens(t *testing.T) {
	l := &loanDomain.Loan{LoanCode: "LON-1", BorrowerID: borrower, Status: loanDomain.StatusFunding}
	uc := newUsecase(uow.Repos{Loans: lockedLoanRepo(l)})

	got, err := uc.Cancel(context.Background(), "LON-1", borrower)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != loanDomain.StatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
}

func TestCancel_ActiveLoanRefused(t *testing.T) {
	l := &loanDomain.Loan{LoanCode: "LON-1", BorrowerID: borrower, Status: loanDomain.StatusActive}
	uc := newUsecase(uow.Repos{Loans: lockedLoanRepo(l)})

	if _, err := uc.Cancel(context.Background(), "LON-1", borrower); !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestReview_ApproveOpensFundingWithDeadline(t *testing.T) {
	l := &loanDomain.Loan{LoanCode: "LON-1", BorrowerID: borrower, Status: loanDomain.StatusPendingReview}
	uc := newUsecase(uow.Repos{Loans: lockedLoanRepo(l)})

	got, err := uc.Review(context.Background(), "LON-1", reviewer, true, "")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if got.Status != loanDomain.StatusFunding {
		t.Errorf("status = %s, want funding", got.Status)
	}
	if got.ReviewedBy != reviewer || got.ReviewedAt == nil {
		t.Error("reviewer audit fields not set")
	}
	wantDeadline := fixedNow().Add(DefaultFundingWindow)
	if got.FundingDeadline == nil || !got.FundingDeadline.Equal(wantDeadline) {
		t.Errorf("deadline = %v, want %v", got.FundingDeadline, wantDeadline)
	}
}

func TestReview_Reject(t *testing.T) {
	l := &loanDomain.Loan{LoanCode: "LON-1", BorrowerID: borrower, Status: loanDomain.StatusPendingReview}
	uc := newUsecase(uow.Repos{Loans: lockedLoanRepo(l)})

	got, err := uc.Review(context.Background(), "LON-1", reviewer, false, "income unverifiable")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if got.Status != loanDomain.StatusRejected {
		t.Errorf("status = %s, want rejected", got.Status)
	}
	if got.RejectionReason != "income unverifiable" {
		t.Errorf("reason = %q", got.RejectionReason)
	}
	if got.FundingDeadline != nil {
		t.Error("rejected loan must not get a funding deadline")
	}
}

func TestReview_DraftRefused(t *testing.T) {
	l := &loanDomain.Loan{LoanCode: "LON-1", BorrowerID: borrower, Status: loanDomain.StatusDraft}
	uc := newUsecase(uow.Repos{Loans: lockedLoanRepo(l)})

	if _, err := uc.Review(context.Background(), "LON-1", reviewer, true, ""); !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}
