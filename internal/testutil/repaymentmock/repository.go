package repaymentmock

import (
	"context"
	"time"

	domain "nexo-backend/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateSchedulesFn                         func(ctx context.Context, rows []domain.Schedule) error
	DeleteSchedulesByLoanIDFn                 func(ctx context.Context, loanID uint64) error
	GetScheduleByIDFn                         func(ctx context.Context, id uint64) (*domain.Schedule, error)
	ListSchedulesByLoanIDFn                   func(ctx context.Context, loanID uint64) ([]domain.Schedule, error)
	ListUnpaidSchedulesDueBeforeFn            func(ctx context.Context, asOf time.Time) ([]domain.Schedule, error)
	ListUnpaidSchedulesByBorrowerDueBetweenFn func(ctx context.Context, borrowerID string, from, to time.Time) ([]domain.Schedule, error)
	CreateRepaymentFn                         func(ctx context.Context, r *domain.Repayment) error
	ExistsRepaymentForScheduleFn              func(ctx context.Context, scheduleID uint64) (bool, error)
	CountRepaymentsByLoanIDFn                 func(ctx context.Context, loanID uint64) (int64, error)
	ListRepaymentsByLoanIDFn                  func(ctx context.Context, loanID uint64) ([]domain.Repayment, error)
	CreateLenderReturnFn                      func(ctx context.Context, lr *domain.LenderReturn) error
	ListLenderReturnsByInvestmentIDFn         func(ctx context.Context, investmentID uint64) ([]domain.LenderReturn, error)
	ListLenderReturnsByRepaymentIDFn          func(ctx context.Context, repaymentID uint64) ([]domain.LenderReturn, error)
}

func (m *Repo) CreateSchedules(ctx context.Context, rows []domain.Schedule) error {
	if m.CreateSchedulesFn != nil {
		return m.CreateSchedulesFn(ctx, rows)
	}
	return nil
}

func (m *Repo) DeleteSchedulesByLoanID(ctx context.Context, loanID uint64) error {
	if m.DeleteSchedulesByLoanIDFn != nil {
		return m.DeleteSchedulesByLoanIDFn(ctx, loanID)
	}
	return nil
}

func (m *Repo) GetScheduleByID(ctx context.Context, id uint64) (*domain.Schedule, error) {
	if m.GetScheduleByIDFn != nil {
		return m.GetScheduleByIDFn(ctx, id)
	}
	return nil, domain.ErrScheduleNotFound
}

func (m *Repo) ListSchedulesByLoanID(ctx context.Context, loanID uint64) ([]domain.Schedule, error) {
	if m.ListSchedulesByLoanIDFn != nil {
		return m.ListSchedulesByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ListUnpaidSchedulesDueBefore(ctx context.Context, asOf time.Time) ([]domain.Schedule, error) {
	if m.ListUnpaidSchedulesDueBeforeFn != nil {
		return m.ListUnpaidSchedulesDueBeforeFn(ctx, asOf)
	}
	return nil, nil
}

func (m *Repo) ListUnpaidSchedulesByBorrowerDueBetween(ctx context.Context, borrowerID string, from, to time.Time) ([]domain.Schedule, error) {
	if m.ListUnpaidSchedulesByBorrowerDueBetweenFn != nil {
		return m.ListUnpaidSchedulesByBorrowerDueBetweenFn(ctx, borrowerID, from, to)
	}
	return nil, nil
}

func (m *Repo) CreateRepayment(ctx context.Context, r *domain.Repayment) error {
	if m.CreateRepaymentFn != nil {
		return m.CreateRepaymentFn(ctx, r)
	}
	return nil
}

func (m *Repo) ExistsRepaymentForSchedule(ctx context.Context, scheduleID uint64) (bool, error) {
	if m.ExistsRepaymentForScheduleFn != nil {
		return m.ExistsRepaymentForScheduleFn(ctx, scheduleID)
	}
	return false, nil
}

func (m *Repo) CountRepaymentsByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountRepaymentsByLoanIDFn != nil {
		return m.CountRepaymentsByLoanIDFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) ListRepaymentsByLoanID(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	if m.ListRepaymentsByLoanIDFn != nil {
		return m.ListRepaymentsByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CreateLenderReturn(ctx context.Context, lr *domain.LenderReturn) error {
	if m.CreateLenderReturnFn != nil {
		return m.CreateLenderReturnFn(ctx, lr)
	}
	return nil
}

func (m *Repo) ListLenderReturnsByInvestmentID(ctx context.Context, investmentID uint64) ([]domain.LenderReturn, error) {
	if m.ListLenderReturnsByInvestmentIDFn != nil {
		return m.ListLenderReturnsByInvestmentIDFn(ctx, investmentID)
	}
	return nil, nil
}

func (m *Repo) ListLenderReturnsByRepaymentID(ctx context.Context, repaymentID uint64) ([]domain.LenderReturn, error) {
	if m.ListLenderReturnsByRepaymentIDFn != nil {
		return m.ListLenderReturnsByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, nil
}
