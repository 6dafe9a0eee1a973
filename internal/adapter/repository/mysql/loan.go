package mysql

import (
	"context"

	"gorm.io/gorm"

	loanDomain "nexo-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).First(&out, id)
	if res.Error != nil {
		return nil, translate(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := lockForUpdate(r.db.WithContext(ctx)).First(&out, id)
	if res.Error != nil {
		return nil, translate(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByLoanCode(ctx context.Context, loanCode string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_code = ?", loanCode).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByLoanCodeForUpdate(ctx context.Context, loanCode string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := lockForUpdate(r.db.WithContext(ctx)).Where("loan_code = ?", loanCode).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ? AND status IN ?", borrowerID, []loanDomain.Status{
			loanDomain.StatusDraft, loanDomain.StatusPendingReview, loanDomain.StatusFunding,
		}).
		Order("id DESC").
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status, limit, offset int) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Where("status = ?", status).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []loanDomain.Loan
	res := q.Find(&out)
	return out, res.Error
}
