package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	repaymentDomain "nexo-backend/internal/domain/repayment"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) CreateSchedules(ctx context.Context, rows []repaymentDomain.Schedule) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *RepaymentRepository) DeleteSchedulesByLoanID(ctx context.Context, loanID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Delete(&repaymentDomain.Schedule{}).Error
}

func (r *RepaymentRepository) GetScheduleByID(ctx context.Context, id uint64) (*repaymentDomain.Schedule, error) {
	var out repaymentDomain.Schedule
	res := r.db.WithContext(ctx).First(&out, id)
	if res.Error != nil {
		return nil, translate(res.Error, repaymentDomain.ErrScheduleNotFound)
	}
	return &out, nil
}

func (r *RepaymentRepository) ListSchedulesByLoanID(ctx context.Context, loanID uint64) ([]repaymentDomain.Schedule, error) {
	var out []repaymentDomain.Schedule
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_number ASC").
		Find(&out)
	return out, res.Error
}

// unpaid means no repayments row references the schedule.
func (r *RepaymentRepository) ListUnpaidSchedulesDueBefore(ctx context.Context, asOf time.Time) ([]repaymentDomain.Schedule, error) {
	var out []repaymentDomain.Schedule
	res := r.db.WithContext(ctx).
		Where("due_date < ?", asOf).
		Where("id NOT IN (?)", r.db.Model(&repaymentDomain.Repayment{}).Select("schedule_id")).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) ListUnpaidSchedulesByBorrowerDueBetween(ctx context.Context, borrowerID string, from, to time.Time) ([]repaymentDomain.Schedule, error) {
	var out []repaymentDomain.Schedule
	q := r.db.WithContext(ctx).
		Joins("JOIN loans ON loans.id = repayment_schedules.loan_id").
		Where("loans.borrower_id = ?", borrowerID).
		Where("repayment_schedules.due_date <= ?", to).
		Where("repayment_schedules.id NOT IN (?)", r.db.Model(&repaymentDomain.Repayment{}).Select("schedule_id"))
	if !from.IsZero() {
		q = q.Where("repayment_schedules.due_date >= ?", from)
	}
	res := q.Order("repayment_schedules.due_date ASC, repayment_schedules.id ASC").Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) CreateRepayment(ctx context.Context, rep *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *RepaymentRepository) ExistsRepaymentForSchedule(ctx context.Context, scheduleID uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&repaymentDomain.Repayment{}).
		Where("schedule_id = ?", scheduleID).
		Count(&n)
	return n > 0, res.Error
}

func (r *RepaymentRepository) CountRepaymentsByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&repaymentDomain.Repayment{}).
		Where("loan_id = ?", loanID).
		Count(&n)
	return n, res.Error
}

func (r *RepaymentRepository) ListRepaymentsByLoanID(ctx context.Context, loanID uint64) ([]repaymentDomain.Repayment, error) {
	var out []repaymentDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) CreateLenderReturn(ctx context.Context, lr *repaymentDomain.LenderReturn) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *RepaymentRepository) ListLenderReturnsByInvestmentID(ctx context.Context, investmentID uint64) ([]repaymentDomain.LenderReturn, error) {
	var out []repaymentDomain.LenderReturn
	res := r.db.WithContext(ctx).
		Where("investment_id = ?", investmentID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) ListLenderReturnsByRepaymentID(ctx context.Context, repaymentID uint64) ([]repaymentDomain.LenderReturn, error) {
	var out []repaymentDomain.LenderReturn
	res := r.db.WithContext(ctx).
		Where("repayment_id = ?", repaymentID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
