package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	Save(ctx context.Context, inv *Investment) error
	GetByInvestmentCode(ctx context.Context, code string) (*Investment, error)
	ListByLenderID(ctx context.Context, lenderID string, limit, offset int) ([]Investment, error)
	// ListActiveByLoanID feeds proportional distribution; order is stable
	// (by id) so repeated distributions visit lenders deterministically.
	ListActiveByLoanID(ctx context.Context, loanID uint64) ([]Investment, error)
}
