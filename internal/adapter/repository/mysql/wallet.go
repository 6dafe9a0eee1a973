package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	walletDomain "nexo-backend/internal/domain/wallet"
)

type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

func (r *WalletRepository) Create(ctx context.Context, w *walletDomain.Wallet) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WalletRepository) Save(ctx context.Context, w *walletDomain.Wallet) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, walletDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*walletDomain.Wallet, error) {
	var out walletDomain.Wallet
	res := lockForUpdate(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, walletDomain.ErrNotFound)
	}
	return &out, nil
}

// lockForUpdate appends SELECT ... FOR UPDATE on engines that support it.
// sqlite (used by the in-memory test suite) serializes writers on its own
// and rejects the clause.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
