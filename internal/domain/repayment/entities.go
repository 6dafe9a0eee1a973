package repayment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrScheduleNotFound = errors.New("repayment schedule not found")
	ErrAlreadyPaid      = errors.New("installment has already been paid")
	ErrNotBorrower      = errors.New("caller is not the borrower of this loan")
	ErrHasRepayments    = errors.New("loan already has repayments against its schedule")
)

// Schedule is one installment row of a loan's amortization plan. The full
// set is generated once at disbursement and only replaced wholesale by an
// explicit admin regeneration.
type Schedule struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID             uint64          `gorm:"column:loan_id;not null;index:idx_schedules_loan" json:"-"`
	InstallmentNumber  int             `gorm:"column:installment_number;not null" json:"installment_number"`
	DueDate            time.Time       `gorm:"column:due_date;type:date;not null" json:"due_date"`
	PrincipalAmount    decimal.Decimal `gorm:"column:principal_amount;type:decimal(18,2);not null" json:"principal_amount"`
	InterestAmount     decimal.Decimal `gorm:"column:interest_amount;type:decimal(18,2);not null" json:"interest_amount"`
	TotalAmount        decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	RemainingPrincipal decimal.Decimal `gorm:"column:remaining_principal;type:decimal(18,2);not null" json:"remaining_principal"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Schedule) TableName() string { return "repayment_schedules" }

type Status string

const (
	StatusPaid Status = "paid"
	StatusLate Status = "late"
)

// Repayment is the realized payment against one schedule row; at most one
// may exist per schedule (unique index on schedule_id).
type Repayment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentCode string          `gorm:"column:repayment_code;size:20;uniqueIndex:ux_repayments_code" json:"repayment_code"`
	LoanID        uint64          `gorm:"column:loan_id;not null;index:idx_repayments_loan" json:"-"`
	BorrowerID    string          `gorm:"column:borrower_id;size:32;index" json:"borrower_id"`
	ScheduleID    uint64          `gorm:"column:schedule_id;not null;uniqueIndex:ux_repayments_schedule" json:"-"`
	DueAmount     decimal.Decimal `gorm:"column:due_amount;type:decimal(18,2);not null" json:"due_amount"`
	PaidAmount    decimal.Decimal `gorm:"column:paid_amount;type:decimal(18,2);not null" json:"paid_amount"`
	LateFee       decimal.Decimal `gorm:"column:late_fee;type:decimal(18,2);not null;default:0" json:"late_fee"`
	DaysOverdue   int             `gorm:"column:days_overdue;not null;default:0" json:"days_overdue"`
	DueDate       time.Time       `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Status        Status          `gorm:"size:10;not null" json:"status"`
	PaidAt        time.Time       `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }

// LenderReturn records one investor's slice of one repayment. For a given
// repayment the totals sum to the installment's principal+interest within
// the accepted rounding drift.
type LenderReturn struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID     uint64          `gorm:"column:repayment_id;not null;index:idx_lender_returns_repayment" json:"-"`
	InvestmentID    uint64          `gorm:"column:investment_id;not null;index:idx_lender_returns_investment" json:"-"`
	LenderID        string          `gorm:"column:lender_id;size:32;index" json:"lender_id"`
	PrincipalAmount decimal.Decimal `gorm:"column:principal_amount;type:decimal(18,2);not null" json:"principal_amount"`
	InterestAmount  decimal.Decimal `gorm:"column:interest_amount;type:decimal(18,2);not null" json:"interest_amount"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (LenderReturn) TableName() string { return "lender_returns" }
