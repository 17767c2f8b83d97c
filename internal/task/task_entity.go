package task

import "time"

// Entry is one extracted task bullet from a time-out report.
// Entries are append-only; there is no update or delete path.
type Entry struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      string    `gorm:"column:user_id;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Date        string    `gorm:"column:date;type:varchar(10);not null;index"`
	Description string    `gorm:"column:task_description;not null"`
	HasLink     bool      `gorm:"column:has_link;default:false"`
	URL         *string   `gorm:"column:deliverable_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "tasks"
}
