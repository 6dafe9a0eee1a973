package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	loanDomain "nexo-backend/internal/domain/loan"
	"nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/uow"
	"nexo-backend/internal/usecase/schedule"
	walletLedger "nexo-backend/internal/usecase/wallet"
)

var hundred = decimal.NewFromInt(100)

// Disburse settles a fully funded loan inside the caller's transaction:
// it materializes the amortization schedule against the funded amount,
// credits the borrower with requested minus the platform fee, and activates
// the loan. The caller must hold the loan row lock.
func Disburse(ctx context.Context, r uow.Repos, l *loanDomain.Loan, now time.Time) (decimal.Decimal, error) {
	if err := l.Transition(loanDomain.StatusFunded); err != nil {
		return decimal.Zero, err
	}

	rows, err := schedule.Build(l.FundedAmount, l.InterestRate, l.TermMonths, now)
	if err != nil {
		return decimal.Zero, err
	}
	for i := range rows {
		rows[i].LoanID = l.ID
	}
	if err := r.Repayments.CreateSchedules(ctx, rows); err != nil {
		return decimal.Zero, err
	}

	platformFee := l.RequestedAmount.Mul(l.PlatformFeeRate).DivRound(hundred, 2)
	net := l.RequestedAmount.Sub(platformFee)
	if _, err := walletLedger.Apply(ctx, r, walletLedger.Entry{
		UserID:      l.BorrowerID,
		Type:        transaction.TypeLoanDisbursement,
		Amount:      l.RequestedAmount,
		Fee:         platformFee,
		LoanID:      &l.ID,
		Description: "Loan disbursement: " + l.LoanCode,
	}); err != nil {
		return decimal.Zero, err
	}

	if err := l.Transition(loanDomain.StatusActive); err != nil {
		return decimal.Zero, err
	}
	l.DisbursedAt = &now
	maturity := now.AddDate(0, l.TermMonths, 0)
	l.MaturityDate = &maturity
	if err := r.Loans.Save(ctx, l); err != nil {
		return decimal.Zero, err
	}
	return net, nil
}
