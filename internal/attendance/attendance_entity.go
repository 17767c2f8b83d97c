package attendance

import "time"

// Status is the closed set of attendance lifecycle states. Absence of a
// record for (user, date) is the implicit "never clocked in" state.
type Status string

const (
	StatusClockedIn Status = "clocked_in"
	StatusOnBreak   Status = "on_break"
	StatusComplete  Status = "complete"
)

// Record is one attendance row per (user_id, date). The uniqueness of
// that pair is enforced by the service, not the schema.
type Record struct {
	ID            uint    `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        string  `gorm:"column:user_id;not null;index:idx_attendance_user_date"`
	Name          string  `gorm:"column:name;not null"`
	Date          string  `gorm:"column:date;type:varchar(10);not null;index:idx_attendance_user_date"`
	TimeIn        *string `gorm:"column:time_in"`
	TimeOut       *string `gorm:"column:time_out"`
	BreakStart    *string `gorm:"column:break_start"`
	BreakEnd      *string `gorm:"column:break_end"`
	BreakDuration float64 `gorm:"column:break_duration;default:0"`
	HoursWorked   float64 `gorm:"column:hours_worked"`
	Status        Status  `gorm:"column:status;type:varchar(20);not null"`
	// CreatedAt is the last-mutation stamp: every transition overwrites
	// it. Reporting relies on this to pick the latest row.
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "attendance"
}
