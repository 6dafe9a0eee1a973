package walletmock

import (
	"context"

	domain "nexo-backend/internal/domain/wallet"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, w *domain.Wallet) error
	GetByUserIDFn          func(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdateFn func(ctx context.Context, userID string) (*domain.Wallet, error)
	SaveFn                 func(ctx context.Context, w *domain.Wallet) error
}

func (m *Repo) Create(ctx context.Context, w *domain.Wallet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, w *domain.Wallet) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	return nil
}
