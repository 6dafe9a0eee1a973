package mysql

import (
	"context"

	"gorm.io/gorm"

	investmentDomain "nexo-backend/internal/domain/investment"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestmentRepository) GetByInvestmentCode(ctx context.Context, code string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).Where("investment_code = ?", code).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, investmentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *InvestmentRepository) ListByLenderID(ctx context.Context, lenderID string, limit, offset int) ([]investmentDomain.Investment, error) {
	q := r.db.WithContext(ctx).Where("lender_id = ?", lenderID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []investmentDomain.Investment
	res := q.Find(&out)
	return out, res.Error
}

func (r *InvestmentRepository) ListActiveByLoanID(ctx context.Context, loanID uint64) ([]investmentDomain.Investment, error) {
	var out []investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND status = ?", loanID, investmentDomain.StatusActive).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
