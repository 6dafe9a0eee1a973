package mysql

import (
	"context"

	"gorm.io/gorm"

	transactionDomain "nexo-backend/internal/domain/transaction"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transactionDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) Save(ctx context.Context, t *transactionDomain.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*transactionDomain.Transaction, error) {
	var out transactionDomain.Transaction
	res := r.db.WithContext(ctx).First(&out, id)
	if res.Error != nil {
		return nil, translate(res.Error, transactionDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *TransactionRepository) GetByReferenceCode(ctx context.Context, code string) (*transactionDomain.Transaction, error) {
	var out transactionDomain.Transaction
	res := r.db.WithContext(ctx).Where("reference_code = ?", code).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, transactionDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID string, f transactionDomain.Filter) ([]transactionDomain.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var out []transactionDomain.Transaction
	res := q.Order("id DESC").Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListByWalletID(ctx context.Context, walletID uint64) ([]transactionDomain.Transaction, error) {
	var out []transactionDomain.Transaction
	res := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Order("id ASC").Find(&out)
	return out, res.Error
}
