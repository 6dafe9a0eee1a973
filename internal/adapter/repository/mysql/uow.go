package mysql

import (
	"context"

	"gorm.io/gorm"

	"nexo-backend/internal/domain/loan"
	"nexo-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bind(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Wallets:      &WalletRepository{db: tx},
		Transactions: &TransactionRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Investments:  &InvestmentRepository{db: tx},
		Repayments:   &RepaymentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanCode string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		// lock the loan row up-front to serialize concurrent writers
		l, err := r.Loans.GetByLoanCodeForUpdate(ctx, loanCode)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
