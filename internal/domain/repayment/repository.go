package repayment

import (
	"context"
	"time"
)

type Repository interface {
	CreateSchedules(ctx context.Context, rows []Schedule) error
	DeleteSchedulesByLoanID(ctx context.Context, loanID uint64) error
	GetScheduleByID(ctx context.Context, id uint64) (*Schedule, error)
	ListSchedulesByLoanID(ctx context.Context, loanID uint64) ([]Schedule, error)
	// ListUnpaidSchedulesDueBefore drives the overdue tick: unpaid rows with
	// due_date strictly before asOf.
	ListUnpaidSchedulesDueBefore(ctx context.Context, asOf time.Time) ([]Schedule, error)
	ListUnpaidSchedulesByBorrowerDueBetween(ctx context.Context, borrowerID string, from, to time.Time) ([]Schedule, error)

	CreateRepayment(ctx context.Context, r *Repayment) error
	ExistsRepaymentForSchedule(ctx context.Context, scheduleID uint64) (bool, error)
	CountRepaymentsByLoanID(ctx context.Context, loanID uint64) (int64, error)
	ListRepaymentsByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)

	CreateLenderReturn(ctx context.Context, lr *LenderReturn) error
	ListLenderReturnsByInvestmentID(ctx context.Context, investmentID uint64) ([]LenderReturn, error)
	ListLenderReturnsByRepaymentID(ctx context.Context, repaymentID uint64) ([]LenderReturn, error)
}
