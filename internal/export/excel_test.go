package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

func TestWorkbook(t *testing.T) {
	in := "9:00 AM"
	out := "5:30 PM"
	url := "https://example.com/pr/1"

	records := []attendance.Record{
		{
			UserID: "u1", Name: "Juan", Date: "2026-02-17",
			TimeIn: &in, TimeOut: &out,
			HoursWorked: 8.5, Status: attendance.StatusComplete,
			CreatedAt: time.Now(),
		},
	}
	tasks := []task.Entry{
		{UserID: "u1", Name: "Juan", Date: "2026-02-17", Description: "Shipped the exporter", URL: &url, HasLink: true},
	}

	f, err := Workbook(records, tasks)
	assert.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Attendance", "B2")
	assert.NoError(t, err)
	assert.Equal(t, "Juan", name)

	desc, err := f.GetCellValue("Tasks", "C2")
	assert.NoError(t, err)
	assert.Equal(t, "Shipped the exporter", desc)

	link, err := f.GetCellValue("Tasks", "D2")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/pr/1", link)
}
