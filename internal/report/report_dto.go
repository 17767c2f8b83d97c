package report

type TodayRecord struct {
	Name          string  `json:"name"`
	TimeIn        *string `json:"time_in"`
	TimeOut       *string `json:"time_out"`
	BreakStart    *string `json:"break_start"`
	BreakEnd      *string `json:"break_end"`
	BreakDuration float64 `json:"break_duration"`
	HoursWorked   float64 `json:"hours_worked"`
	Status        string  `json:"status"`
}

type StaffPresence struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type CountResponse struct {
	Date         string          `json:"date"`
	TotalStaff   int             `json:"total_staff"`
	PresentCount int             `json:"present_count"`
	AbsentCount  int             `json:"absent_count"`
	Present      []StaffPresence `json:"present"`
	Absent       []StaffPresence `json:"absent"`
}

type DailySummaryRow struct {
	Date         string  `json:"date"`
	StaffCount   int     `json:"staff_count"`
	TotalHours   float64 `json:"total_hours"`
	Completed    int     `json:"completed"`
	StillWorking int     `json:"still_working"`
}

type WeeklySummaryRow struct {
	Week           string  `json:"week"`
	WeekStart      string  `json:"week_start"`
	WeekEnd        string  `json:"week_end"`
	UniqueStaff    int     `json:"unique_staff"`
	DaysWorked     int     `json:"days_worked"`
	TotalHours     float64 `json:"total_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}

type MonthlySummaryRow struct {
	Month           string  `json:"month"`
	MonthName       string  `json:"month_name"`
	UniqueStaff     int     `json:"unique_staff"`
	DaysWorked      int     `json:"days_worked"`
	TotalHours      float64 `json:"total_hours"`
	AvgHoursPerDay  float64 `json:"avg_hours_per_day"`
	TotalBreakHours float64 `json:"total_break_hours"`
}

type WeekRow struct {
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
	DaysWorked int     `json:"days_worked"`
}

type TaskRow struct {
	Name      string  `json:"name"`
	Task      string  `json:"task"`
	Date      string  `json:"date,omitempty"`
	URL       *string `json:"url"`
	CreatedAt string  `json:"created_at"`
}

type Stats struct {
	TotalAttendance  int64   `json:"total_attendance"`
	TotalTasks       int64   `json:"total_tasks"`
	TotalHours       float64 `json:"total_hours"`
	WeekHours        float64 `json:"week_hours"`
	CurrentlyWorking int64   `json:"currently_working"`
	OnBreak          int64   `json:"on_break"`
}

type RecentTasksQuery struct {
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}
