package repayment

import (
	"context"
	"time"

	loanDomain "nexo-backend/internal/domain/loan"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/internal/usecase/schedule"
)

// RegenerateSchedule replaces a loan's amortization plan wholesale, for
// admin corrections before any money has moved against it. It refuses once a
// single installment has been paid: a partially-settled plan can only be
// reconstructed manually.
func (u *Usecase) RegenerateSchedule(ctx context.Context, loanCode string) ([]repaymentDomain.Schedule, error) {
	var out []repaymentDomain.Schedule
	err := u.uow.WithinLoanTx(ctx, loanCode, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusFunded && l.Status != loanDomain.StatusActive {
			return loanDomain.ErrInvalidTransition
		}
		n, err := r.Repayments.CountRepaymentsByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return repaymentDomain.ErrHasRepayments
		}

		anchor := u.nowFn()
		if l.DisbursedAt != nil {
			anchor = *l.DisbursedAt
		}
		rows, err := schedule.Build(l.FundedAmount, l.InterestRate, l.TermMonths, anchor)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].LoanID = l.ID
		}
		if err := r.Repayments.DeleteSchedulesByLoanID(ctx, l.ID); err != nil {
			return err
		}
		if err := r.Repayments.CreateSchedules(ctx, rows); err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpcomingWindow is how far ahead the borrower's "due soon" view reaches.
const UpcomingWindow = 30 * 24 * time.Hour
