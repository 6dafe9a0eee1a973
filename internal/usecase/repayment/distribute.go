package repayment

import (
	"context"
	"fmt"

	loanDomain "nexo-backend/internal/domain/loan"
	repaymentDomain "nexo-backend/internal/domain/repayment"
	"nexo-backend/internal/domain/transaction"
	"nexo-backend/internal/domain/uow"
	walletLedger "nexo-backend/internal/usecase/wallet"
)

// distribute credits every active investor with its pro-rata slice of one
// settled installment. Each share is rounded to 2 decimal places on its own,
// so the slices may undershoot the installment total by a few minor units;
// that drift stays with the platform rather than being swept to any one
// investor. Late fees are not distributed.
func distribute(ctx context.Context, r uow.Repos, l *loanDomain.Loan, sched *repaymentDomain.Schedule, rep *repaymentDomain.Repayment) ([]repaymentDomain.LenderReturn, error) {
	invs, err := r.Investments.ListActiveByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	returns := make([]repaymentDomain.LenderReturn, 0, len(invs))
	for i := range invs {
		inv := &invs[i]
		ratio := inv.Amount.DivRound(l.FundedAmount, 10)
		principalShare := sched.PrincipalAmount.Mul(ratio).Round(2)
		interestShare := sched.InterestAmount.Mul(ratio).Round(2)
		total := principalShare.Add(interestShare)

		if _, err := walletLedger.Apply(ctx, r, walletLedger.Entry{
			UserID:       inv.LenderID,
			Type:         transaction.TypeRepaymentReceived,
			Amount:       total,
			LoanID:       &l.ID,
			InvestmentID: &inv.ID,
			RepaymentID:  &rep.ID,
			Description:  fmt.Sprintf("Return on %s from loan %s", inv.InvestmentCode, l.LoanCode),
		}); err != nil {
			return nil, err
		}

		lr := repaymentDomain.LenderReturn{
			RepaymentID:     rep.ID,
			InvestmentID:    inv.ID,
			LenderID:        inv.LenderID,
			PrincipalAmount: principalShare,
			InterestAmount:  interestShare,
			TotalAmount:     total,
		}
		if err := r.Repayments.CreateLenderReturn(ctx, &lr); err != nil {
			return nil, err
		}

		inv.ActualReturn = inv.ActualReturn.Add(total)
		if err := r.Investments.Save(ctx, inv); err != nil {
			return nil, err
		}
		returns = append(returns, lr)
	}
	return returns, nil
}
