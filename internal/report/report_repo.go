package report

import (
	"context"

	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

// Repository is the read side over the attendance and tasks tables.
// Week and month grouping is folded in Go, so queries stay
// dialect-neutral across the sqlite and postgres backends.
type Repository interface {
	ListByDate(ctx context.Context, date string) ([]attendance.Record, error)
	PresentUserIDs(ctx context.Context, date string) ([]string, error)
	ListFrom(ctx context.Context, from string) ([]attendance.Record, error)
	ListCompleteFrom(ctx context.Context, from string) ([]attendance.Record, error)
	ListAll(ctx context.Context) ([]attendance.Record, error)
	CountAttendance(ctx context.Context) (int64, error)
	CountTasks(ctx context.Context) (int64, error)
	SumCompletedHours(ctx context.Context) (float64, error)
	SumCompletedHoursFrom(ctx context.Context, from string) (float64, error)
	CountStatusOnDate(ctx context.Context, date string, status attendance.Status) (int64, error)
	TasksByDate(ctx context.Context, date string) ([]task.Entry, error)
	RecentTasks(ctx context.Context, limit int) ([]task.Entry, error)
	AllTasks(ctx context.Context) ([]task.Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	var rows []attendance.Record
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time_in").
		Find(&rows).Error
	return rows, err
}

func (r *repository) PresentUserIDs(ctx context.Context, date string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&attendance.Record{}).
		Where("date = ?", date).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) ListFrom(ctx context.Context, from string) ([]attendance.Record, error) {
	var rows []attendance.Record
	err := r.db.WithContext(ctx).
		Where("date >= ?", from).
		Order("date").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListCompleteFrom(ctx context.Context, from string) ([]attendance.Record, error) {
	var rows []attendance.Record
	err := r.db.WithContext(ctx).
		Where("date >= ?", from).
		Where("status = ?", attendance.StatusComplete).
		Order("date").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListAll(ctx context.Context) ([]attendance.Record, error) {
	var rows []attendance.Record
	err := r.db.WithContext(ctx).
		Order("date, time_in").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAttendance(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&attendance.Record{}).Count(&n).Error
	return n, err
}

func (r *repository) CountTasks(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&task.Entry{}).Count(&n).Error
	return n, err
}

func (r *repository) SumCompletedHours(ctx context.Context) (float64, error) {
	return r.sumHours(ctx, "")
}

func (r *repository) SumCompletedHoursFrom(ctx context.Context, from string) (float64, error) {
	return r.sumHours(ctx, from)
}

func (r *repository) sumHours(ctx context.Context, from string) (float64, error) {
	// COALESCE keeps an empty window at 0 instead of NULL.
	q := r.db.WithContext(ctx).
		Model(&attendance.Record{}).
		Select("COALESCE(SUM(hours_worked), 0)").
		Where("status = ?", attendance.StatusComplete)
	if from != "" {
		q = q.Where("date >= ?", from)
	}

	var total float64
	err := q.Scan(&total).Error
	return total, err
}

func (r *repository) CountStatusOnDate(ctx context.Context, date string, status attendance.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&attendance.Record{}).
		Where("date = ?", date).
		Where("status = ?", status).
		Distinct("user_id").
		Count(&n).Error
	return n, err
}

func (r *repository) TasksByDate(ctx context.Context, date string) ([]task.Entry, error) {
	var rows []task.Entry
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) RecentTasks(ctx context.Context, limit int) ([]task.Entry, error) {
	var rows []task.Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) AllTasks(ctx context.Context) ([]task.Entry, error) {
	var rows []task.Entry
	err := r.db.WithContext(ctx).
		Order("date, created_at").
		Find(&rows).Error
	return rows, err
}
