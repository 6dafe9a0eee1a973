// Package schedule computes equal-installment (EMI) amortization plans.
package schedule

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"nexo-backend/internal/domain/repayment"
)

var ErrInvalidTerm = errors.New("term must be at least one month")

var (
	one           = decimal.NewFromInt(1)
	twelveHundred = decimal.NewFromInt(1200)
)

// Build produces the full installment set for a loan.
//
//	r   = annualRatePct / 1200, at 10 fractional digits
//	EMI = P * r * (1+r)^N / ((1+r)^N - 1), rounded half-up to 2 dp
//
// Interest of installment i is remaining*r (2 dp); its principal is
// EMI - interest, except the final installment, whose principal is forced
// to the exact remaining principal so that the principals sum to P with no
// rounding leakage. Due dates run monthly, starting one month after
// disbursement.
func Build(principal, annualRatePct decimal.Decimal, termMonths int, disbursedAt time.Time) ([]repayment.Schedule, error) {
	if termMonths < 1 {
		return nil, ErrInvalidTerm
	}
	if !principal.IsPositive() || annualRatePct.IsNegative() {
		return nil, errors.New("principal must be positive and rate non-negative")
	}

	monthlyRate := annualRatePct.DivRound(twelveHundred, 10)
	emi := computeEMI(principal, monthlyRate, termMonths)

	rows := make([]repayment.Schedule, 0, termMonths)
	remaining := principal
	dueDate := disbursedAt.AddDate(0, 1, 0)

	for i := 1; i <= termMonths; i++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := emi.Sub(interest)
		if i == termMonths {
			// Absorb accumulated rounding drift into the last installment.
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		rows = append(rows, repayment.Schedule{
			InstallmentNumber:  i,
			DueDate:            dueDate,
			PrincipalAmount:    principalPart,
			InterestAmount:     interest,
			TotalAmount:        principalPart.Add(interest),
			RemainingPrincipal: remaining,
		})
		dueDate = dueDate.AddDate(0, 1, 0)
	}
	return rows, nil
}

// EMI exposes the raw installment amount, mainly for display.
func EMI(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	return computeEMI(principal, annualRatePct.DivRound(twelveHundred, 10), termMonths)
}

func computeEMI(principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	if monthlyRate.IsZero() {
		return principal.DivRound(n, 2)
	}
	pow := one.Add(monthlyRate).Pow(n)
	return principal.Mul(monthlyRate).Mul(pow).DivRound(pow.Sub(one), 2)
}
