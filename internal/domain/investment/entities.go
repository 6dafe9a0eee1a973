package investment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("investment not found")
	ErrOwnLoan     = errors.New("borrower cannot invest in own loan")
	ErrOverfunding = errors.New("investment exceeds remaining loan capacity")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
	StatusCancelled Status = "cancelled"
)

// Investment is one lender's committed stake in one loan. Amount is
// immutable after creation; ActualReturn only ever grows.
type Investment struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	InvestmentCode string          `gorm:"column:investment_code;size:32;uniqueIndex:ux_investments_code" json:"investment_code"`
	LoanID         uint64          `gorm:"column:loan_id;not null;index:idx_investments_loan" json:"-"`
	LenderID       string          `gorm:"column:lender_id;size:32;index:idx_investments_lender" json:"lender_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	InterestRate   decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	ExpectedReturn decimal.Decimal `gorm:"column:expected_return;type:decimal(18,2);not null" json:"expected_return"`
	ActualReturn   decimal.Decimal `gorm:"column:actual_return;type:decimal(18,2);not null;default:0" json:"actual_return"`
	Status         Status          `gorm:"size:10;not null;default:'active'" json:"status"`
	MaturityDate   *time.Time      `gorm:"column:maturity_date" json:"maturity_date,omitempty"`
	InvestedAt     time.Time       `gorm:"column:invested_at" json:"invested_at"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Investment) TableName() string { return "investments" }
