package loanmock

import (
	"context"

	"gorm.io/gorm"

	domain "nexo-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only set the function fields a test needs.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByLoanCodeFn          func(ctx context.Context, loanCode string) (*domain.Loan, error)
	GetByLoanCodeForUpdateFn func(ctx context.Context, loanCode string) (*domain.Loan, error)
	GetByIDForUpdateFn       func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetPendingByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByStatusFn           func(ctx context.Context, status domain.Status, limit, offset int) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanCode(ctx context.Context, loanCode string) (*domain.Loan, error) {
	if m.GetByLoanCodeFn != nil {
		return m.GetByLoanCodeFn(ctx, loanCode)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanCodeForUpdate(ctx context.Context, loanCode string) (*domain.Loan, error) {
	if m.GetByLoanCodeForUpdateFn != nil {
		return m.GetByLoanCodeForUpdateFn(ctx, loanCode)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetPendingByBorrowerIDFn != nil {
		return m.GetPendingByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status, limit, offset int) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, limit, offset)
	}
	return nil, nil
}
