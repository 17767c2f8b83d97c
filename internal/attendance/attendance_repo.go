package attendance

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *Record) error
	Update(ctx context.Context, r *Record) error
	// FindByUserAndDate returns the day's row regardless of status, or
	// nil when the user never clocked in that day.
	FindByUserAndDate(ctx context.Context, userID, date string) (*Record, error)
	FindByStatus(ctx context.Context, userID, date string, status Status) (*Record, error)
	// LatestBreakDuration returns the most recent non-zero break amount
	// recorded for the day, or 0 when no break was logged.
	LatestBreakDuration(ctx context.Context, userID, date string) (float64, error)
	// DeleteInProgress clears any clocked_in or on_break row for the day.
	DeleteInProgress(ctx context.Context, userID, date string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID, date string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByStatus(ctx context.Context, userID, date string, status Status) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Where("status = ?", status).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) LatestBreakDuration(ctx context.Context, userID, date string) (float64, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Where("break_duration > 0").
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.BreakDuration, nil
}

func (r *repository) DeleteInProgress(ctx context.Context, userID, date string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Where("status IN ?", []Status{StatusClockedIn, StatusOnBreak}).
		Delete(&Record{}).Error
}
