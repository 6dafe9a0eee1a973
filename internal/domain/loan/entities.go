package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrNotFunding        = errors.New("loan is not open for funding")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrPendingExists     = errors.New("borrower already has a pending loan")
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusFunding       Status = "funding"
	StatusFunded        Status = "funded"
	StatusActive        Status = "active"
	StatusCompleted     Status = "completed"
	StatusDefaulted     Status = "defaulted"
	StatusRejected      Status = "rejected"
	StatusCancelled     Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusDraft:         {StatusPendingReview, StatusCancelled},
	StatusPendingReview: {StatusFunding, StatusRejected, StatusCancelled},
	StatusFunding:       {StatusFunded, StatusCancelled},
	StatusFunded:        {StatusActive},
	StatusActive:        {StatusCompleted, StatusDefaulted},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanCode        string          `gorm:"column:loan_code;size:32;uniqueIndex:ux_loans_loan_code" json:"loan_code"`
	BorrowerID      string          `gorm:"column:borrower_id;size:32;index:idx_loans_borrower" json:"borrower_id"`
	Title           string          `gorm:"size:255" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	RequestedAmount decimal.Decimal `gorm:"column:requested_amount;type:decimal(18,2);not null" json:"requested_amount"`
	FundedAmount    decimal.Decimal `gorm:"column:funded_amount;type:decimal(18,2);not null;default:0" json:"funded_amount"`
	InterestRate    decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	PlatformFeeRate decimal.Decimal `gorm:"column:platform_fee_rate;type:decimal(5,2);not null" json:"platform_fee_rate"`
	TermMonths      int             `gorm:"column:term_months;not null" json:"term_months"`
	Status          Status          `gorm:"size:20;not null;default:'draft';index:idx_loans_status" json:"status"`
	FundingDeadline *time.Time      `gorm:"column:funding_deadline" json:"funding_deadline,omitempty"`
	DisbursedAt     *time.Time      `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	MaturityDate    *time.Time      `gorm:"column:maturity_date" json:"maturity_date,omitempty"`
	ReviewedBy      string          `gorm:"column:reviewed_by;size:32" json:"-"`
	ReviewedAt      *time.Time      `gorm:"column:reviewed_at" json:"-"`
	RejectionReason string          `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	TotalRepaid     decimal.Decimal `gorm:"column:total_repaid;type:decimal(18,2);not null;default:0" json:"total_repaid"`
	TotalInterest   decimal.Decimal `gorm:"column:total_interest_paid;type:decimal(18,2);not null;default:0" json:"total_interest_paid"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// RemainingCapacity is the still-unfunded portion of the requested amount.
func (l *Loan) RemainingCapacity() decimal.Decimal {
	return l.RequestedAmount.Sub(l.FundedAmount)
}

func (l *Loan) IsFullyFunded() bool {
	return l.FundedAmount.GreaterThanOrEqual(l.RequestedAmount)
}

// Transition moves the loan to the target status, enforcing the state machine.
func (l *Loan) Transition(to Status) error {
	if !CanTransition(l.Status, to) {
		return ErrInvalidTransition
	}
	l.Status = to
	return nil
}
