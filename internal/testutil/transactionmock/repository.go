package transactionmock

import (
	"context"

	domain "nexo-backend/internal/domain/transaction"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, t *domain.Transaction) error
	SaveFn               func(ctx context.Context, t *domain.Transaction) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Transaction, error)
	GetByReferenceCodeFn func(ctx context.Context, code string) (*domain.Transaction, error)
	ListByUserIDFn       func(ctx context.Context, userID string, f domain.Filter) ([]domain.Transaction, error)
	ListByWalletIDFn     func(ctx context.Context, walletID uint64) ([]domain.Transaction, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *domain.Transaction) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Transaction, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByReferenceCode(ctx context.Context, code string) (*domain.Transaction, error) {
	if m.GetByReferenceCodeFn != nil {
		return m.GetByReferenceCodeFn(ctx, code)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByUserID(ctx context.Context, userID string, f domain.Filter) ([]domain.Transaction, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, f)
	}
	return nil, nil
}

func (m *Repo) ListByWalletID(ctx context.Context, walletID uint64) ([]domain.Transaction, error) {
	if m.ListByWalletIDFn != nil {
		return m.ListByWalletIDFn(ctx, walletID)
	}
	return nil, nil
}
