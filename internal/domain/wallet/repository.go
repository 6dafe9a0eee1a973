package wallet

import "context"

type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// GetByUserIDForUpdate acquires an exclusive row lock on the wallet for
	// the remainder of the enclosing transaction. Every read-then-write of
	// Balance/LockedBalance must go through this.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error
}
