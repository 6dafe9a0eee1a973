package transaction

import "context"

// Filter narrows ListByUserID; zero values mean "any".
type Filter struct {
	Type   Type
	Status Status
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Save(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uint64) (*Transaction, error)
	GetByReferenceCode(ctx context.Context, code string) (*Transaction, error)
	ListByUserID(ctx context.Context, userID string, f Filter) ([]Transaction, error)
	// ListByWalletID returns the wallet's full history in insertion order,
	// which is what balance reconciliation replays.
	ListByWalletID(ctx context.Context, walletID uint64) ([]Transaction, error)
}
