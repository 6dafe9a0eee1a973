package repayment

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/uow"
)

// OverdueItem is one unpaid installment past its due date, with the late fee
// it would carry if paid today.
type OverdueItem struct {
	Schedule    repaymentDomain.Schedule `json:"schedule"`
	LoanCode    string                   `json:"loan_code"`
	BorrowerID  string                   `json:"borrower_id"`
	DaysOverdue int                      `json:"days_overdue"`
	LateFee     string                   `json:"late_fee"`
}

// ScanOverdueSchedules finds every unpaid installment whose due date has
// passed and emits an overdue notification per borrower+installment. It is
// read-only: flagging never mutates loan or schedule state, so the scan is
// safe to re-run.
func (u *Usecase) ScanOverdueSchedules(ctx context.Context) ([]OverdueItem, error) {
	now := u.nowFn()
	var items []OverdueItem

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Repayments.ListUnpaidSchedulesDueBefore(ctx, now)
		if err != nil {
			return err
		}
		for i := range rows {
			sched := rows[i]
			days := daysOverdue(sched.DueDate, now)
			if days <= 0 {
				continue
			}
			l, err := r.Loans.GetByID(ctx, sched.LoanID)
			if err != nil {
				return err
			}
			fee := sched.TotalAmount.Mul(LateFeeRate).Mul(decimal.NewFromInt(int64(days))).Round(2)
			items = append(items, OverdueItem{
				Schedule:    sched,
				LoanCode:    l.LoanCode,
				BorrowerID:  l.BorrowerID,
				DaysOverdue: days,
				LateFee:     fee.StringFixed(2),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		u.notifier.RepaymentOverdue(ctx, it.BorrowerID, it.LoanCode, it.Schedule.InstallmentNumber, it.DaysOverdue)
	}
	if len(items) > 0 {
		log.Printf("overdue scan found %d unpaid installments as of %s", len(items), now.Format(time.DateOnly))
	}
	return items, nil
}
