package repayment

import (
	"context"
	"time"

	investmentDomain "nexo-backend/internal/domain/investment"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/uow"
)

// Upcoming lists the borrower's unpaid installments due within the next
// UpcomingWindow, including those already overdue.
func (u *Usecase) Upcoming(ctx context.Context, borrowerID string) ([]repaymentDomain.Schedule, error) {
	now := u.nowFn()
	var out []repaymentDomain.Schedule
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Repayments.ListUnpaidSchedulesByBorrowerDueBetween(ctx, borrowerID, time.Time{}, now.Add(UpcomingWindow))
		if err != nil {
			return err
		}
		out = rows
		return nil
	})
	return out, err
}

// Overdue lists the borrower's unpaid installments whose due date has
// already passed.
func (u *Usecase) Overdue(ctx context.Context, borrowerID string) ([]repaymentDomain.Schedule, error) {
	now := u.nowFn()
	var out []repaymentDomain.Schedule
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Repayments.ListUnpaidSchedulesByBorrowerDueBetween(ctx, borrowerID, time.Time{}, now)
		if err != nil {
			return err
		}
		for i := range rows {
			if daysOverdue(rows[i].DueDate, now) > 0 {
				out = append(out, rows[i])
			}
		}
		return nil
	})
	return out, err
}

// History lists every repayment made against a loan, newest first.
func (u *Usecase) History(ctx context.Context, loanCode, userID string) ([]repaymentDomain.Repayment, error) {
	var out []repaymentDomain.Repayment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanCode(ctx, loanCode)
		if err != nil {
			return err
		}
		if l.BorrowerID != userID {
			return repaymentDomain.ErrNotBorrower
		}
		rows, err := r.Repayments.ListRepaymentsByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = rows
		return nil
	})
	return out, err
}

// LenderReturns lists the per-installment credits a lender has received on
// one of its investments.
func (u *Usecase) LenderReturns(ctx context.Context, investmentCode, lenderID string) ([]repaymentDomain.LenderReturn, error) {
	var out []repaymentDomain.LenderReturn
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentCode(ctx, investmentCode)
		if err != nil {
			return err
		}
		if inv.LenderID != lenderID {
			return investmentDomain.ErrNotFound
		}
		rows, err := r.Repayments.ListLenderReturnsByInvestmentID(ctx, inv.ID)
		if err != nil {
			return err
		}
		out = rows
		return nil
	})
	return out, err
}
