package loan

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loanDomain "nexo-backend/internal/domain/loan"
	"nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/pkg/code"
)

// DefaultPlatformFeeRate is the percentage of the requested amount retained
// by the platform at disbursement.
var DefaultPlatformFeeRate = decimal.RequireFromString("2.00")

// DefaultFundingWindow is how long an approved loan stays open for funding.
const DefaultFundingWindow = 30 * 24 * time.Hour

type Usecase struct {
	uow   uow.UnitOfWork
	nowFn func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, nowFn: func() time.Time { return time.Now().UTC() }}
}

type CreateLoanInput struct {
	BorrowerID   string
	Title        string
	Description  string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*loanDomain.Loan, error) {
	if !in.Amount.IsPositive() || in.TermMonths < 1 || in.InterestRate.IsNegative() {
		return nil, errors.New("invalid loan input")
	}
	var out *loanDomain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// One pending (pre-funding) loan per borrower at a time.
		_, err := r.Loans.GetPendingByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			return loanDomain.ErrPendingExists
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		l := &loanDomain.Loan{
			LoanCode:        code.Loan(),
			BorrowerID:      in.BorrowerID,
			Title:           in.Title,
			Description:     in.Description,
			RequestedAmount: in.Amount,
			FundedAmount:    decimal.Zero,
			InterestRate:    in.InterestRate,
			PlatformFeeRate: DefaultPlatformFeeRate,
			TermMonths:      in.TermMonths,
			Status:          loanDomain.StatusDraft,
			TotalRepaid:     decimal.Zero,
			TotalInterest:   decimal.Zero,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

// Submit moves a draft to review.
func (u *Usecase) Submit(ctx context.Context, loanCode, borrowerID string) (*loanDomain.Loan, error) {
	return u.transition(ctx, loanCode, borrowerID, loanDomain.StatusPendingReview, nil)
}

// Cancel withdraws a loan before it opens for funding.
func (u *Usecase) Cancel(ctx context.Context, loanCode, borrowerID string) (*loanDomain.Loan, error) {
	return u.transition(ctx, loanCode, borrowerID, loanDomain.StatusCancelled, nil)
}

func (u *Usecase) transition(ctx context.Context, loanCode, borrowerID string, to loanDomain.Status, mutate func(*loanDomain.Loan)) (*loanDomain.Loan, error) {
	var out *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanCode, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.BorrowerID != borrowerID {
			return repayment.ErrNotBorrower
		}
		if err := l.Transition(to); err != nil {
			return err
		}
		if mutate != nil {
			mutate(l)
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

// Review approves (opens funding with a deadline) or rejects a loan under
// review. The reviewer id comes from the admin layer and is trusted here.
func (u *Usecase) Review(ctx context.Context, loanCode, reviewerID string, approve bool, reason string) (*loanDomain.Loan, error) {
	var out *loanDomain.Loan
	err := u.uow.WithinLoanTx(ctx, loanCode, func(r uow.Repos, l *loanDomain.Loan) error {
		now := u.nowFn()
		to := loanDomain.StatusRejected
		if approve {
			to = loanDomain.StatusFunding
		}
		if err := l.Transition(to); err != nil {
			return err
		}
		l.ReviewedBy = reviewerID
		l.ReviewedAt = &now
		if approve {
			deadline := now.Add(DefaultFundingWindow)
			l.FundingDeadline = &deadline
		} else {
			l.RejectionReason = reason
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

func (u *Usecase) Get(ctx context.Context, loanCode string) (*loanDomain.Loan, error) {
	var out *loanDomain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanCode(ctx, loanCode)
		if err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

func (u *Usecase) ListFunding(ctx context.Context, limit, offset int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ls, err := r.Loans.ListByStatus(ctx, loanDomain.StatusFunding, limit, offset)
		if err != nil {
			return err
		}
		out = ls
		return nil
	})
	return out, err
}

func (u *Usecase) GetSchedule(ctx context.Context, loanCode string) ([]repayment.Schedule, error) {
	var out []repayment.Schedule
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanCode(ctx, loanCode)
		if err != nil {
			return err
		}
		rows, err := r.Repayments.ListSchedulesByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = rows
		return nil
	})
	return out, err
}
