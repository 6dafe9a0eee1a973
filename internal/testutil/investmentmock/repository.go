package investmentmock

import (
	"context"

	domain "nexo-backend/internal/domain/investment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, inv *domain.Investment) error
	SaveFn                func(ctx context.Context, inv *domain.Investment) error
	GetByInvestmentCodeFn func(ctx context.Context, code string) (*domain.Investment, error)
	ListByLenderIDFn      func(ctx context.Context, lenderID string, limit, offset int) ([]domain.Investment, error)
	ListActiveByLoanIDFn  func(ctx context.Context, loanID uint64) ([]domain.Investment, error)
}

func (m *Repo) Create(ctx context.Context, inv *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, inv *domain.Investment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}

func (m *Repo) GetByInvestmentCode(ctx context.Context, code string) (*domain.Investment, error) {
	if m.GetByInvestmentCodeFn != nil {
		return m.GetByInvestmentCodeFn(ctx, code)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByLenderID(ctx context.Context, lenderID string, limit, offset int) ([]domain.Investment, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID, limit, offset)
	}
	return nil, nil
}

func (m *Repo) ListActiveByLoanID(ctx context.Context, loanID uint64) ([]domain.Investment, error) {
	if m.ListActiveByLoanIDFn != nil {
		return m.ListActiveByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
