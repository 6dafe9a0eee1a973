package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByLoanCode(ctx context.Context, loanCode string) (*Loan, error)
	// GetByLoanCodeForUpdate locks the loan row for the enclosing transaction.
	// The funded_amount increment and the over-funding check must both happen
	// under this lock.
	GetByLoanCodeForUpdate(ctx context.Context, loanCode string) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	GetPendingByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Loan, error)
}
