package uow

import (
	"context"
	"errors"

	"nexo-backend/internal/domain/investment"
	"nexo-backend/internal/domain/loan"
	"nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/wallet"
)

// ErrLockTimeout means an exclusive row lock could not be acquired within the
// store's bounded wait. The whole operation may be retried from scratch;
// nothing was committed.
var ErrLockTimeout = errors.New("row lock wait timed out")

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Wallets      wallet.Repository
	Transactions transaction.Repository
	Loans        loan.Repository
	Investments  investment.Repository
	Repayments   repayment.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn in one atomic transaction; any returned error rolls
	// everything back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx additionally locks the loan row up-front, serializing all
	// funding-phase writers on that loan.
	WithinLoanTx(ctx context.Context, loanCode string, fn func(r Repos, l *loan.Loan) error) error
}
