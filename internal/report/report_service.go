package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/hours"
	"github.com/cexutoire/wibiz-attendance-bot/internal/roster"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

// Service is the read-only reporting facade. Every aggregate tolerates
// an empty window by reporting zero.
type Service interface {
	Today(ctx context.Context) ([]TodayRecord, error)
	Count(ctx context.Context) (CountResponse, error)
	DailySummary(ctx context.Context) ([]DailySummaryRow, error)
	WeeklySummary(ctx context.Context) ([]WeeklySummaryRow, error)
	MonthlySummary(ctx context.Context) ([]MonthlySummaryRow, error)
	Week(ctx context.Context) ([]WeekRow, error)
	TodayTasks(ctx context.Context) ([]TaskRow, error)
	RecentTasks(ctx context.Context, limit int) ([]TaskRow, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo  Repository
	staff *roster.Registry
	clock clock.Clock
}

func NewService(repo Repository, staff *roster.Registry, clk clock.Clock) Service {
	return &service{repo: repo, staff: staff, clock: clk}
}

func (s *service) Today(ctx context.Context) ([]TodayRecord, error) {
	rows, err := s.repo.ListByDate(ctx, s.clock.Today())
	if err != nil {
		return nil, err
	}

	out := make([]TodayRecord, len(rows))
	for i, r := range rows {
		out[i] = TodayRecord{
			Name:          r.Name,
			TimeIn:        r.TimeIn,
			TimeOut:       r.TimeOut,
			BreakStart:    r.BreakStart,
			BreakEnd:      r.BreakEnd,
			BreakDuration: r.BreakDuration,
			HoursWorked:   r.HoursWorked,
			Status:        string(r.Status),
		}
	}
	return out, nil
}

func (s *service) Count(ctx context.Context) (CountResponse, error) {
	today := s.clock.Today()

	presentIDs, err := s.repo.PresentUserIDs(ctx, today)
	if err != nil {
		return CountResponse{}, err
	}
	seen := make(map[string]bool, len(presentIDs))
	for _, id := range presentIDs {
		seen[id] = true
	}

	active := s.staff.Active()
	resp := CountResponse{
		Date:       today,
		TotalStaff: len(active),
		Present:    []StaffPresence{},
		Absent:     []StaffPresence{},
	}
	for _, st := range active {
		p := StaffPresence{Name: st.Name, Role: st.Role}
		if seen[st.UserID] {
			resp.Present = append(resp.Present, p)
		} else {
			resp.Absent = append(resp.Absent, p)
		}
	}
	resp.PresentCount = len(resp.Present)
	resp.AbsentCount = len(resp.Absent)
	return resp, nil
}

// DailySummary covers the past 30 days, newest first.
func (s *service) DailySummary(ctx context.Context) ([]DailySummaryRow, error) {
	from := s.clock.Now().AddDate(0, 0, -30).Format(clock.DateLayout)
	rows, err := s.repo.ListFrom(ctx, from)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		users        map[string]bool
		totalHours   float64
		completed    int
		stillWorking int
	}
	buckets := make(map[string]*bucket)
	for _, r := range rows {
		b, ok := buckets[r.Date]
		if !ok {
			b = &bucket{users: make(map[string]bool)}
			buckets[r.Date] = b
		}
		b.users[r.UserID] = true
		b.totalHours += r.HoursWorked
		switch r.Status {
		case attendance.StatusComplete:
			b.completed++
		case attendance.StatusClockedIn:
			b.stillWorking++
		}
	}

	out := make([]DailySummaryRow, 0, len(buckets))
	for date, b := range buckets {
		out = append(out, DailySummaryRow{
			Date:         date,
			StaffCount:   len(b.users),
			TotalHours:   hours.Round(b.totalHours),
			Completed:    b.completed,
			StillWorking: b.stillWorking,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// WeeklySummary covers the past 12 weeks of completed records, bucketed
// by ISO week, newest first.
func (s *service) WeeklySummary(ctx context.Context) ([]WeeklySummaryRow, error) {
	from := s.clock.Now().AddDate(0, 0, -12*7).Format(clock.DateLayout)
	rows, err := s.repo.ListCompleteFrom(ctx, from)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		start, end string
		users      map[string]bool
		userDays   map[string]bool
		totalHours float64
		rowCount   int
	}
	buckets := make(map[string]*bucket)
	for _, r := range rows {
		key := weekKey(r.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				start:    r.Date,
				end:      r.Date,
				users:    make(map[string]bool),
				userDays: make(map[string]bool),
			}
			buckets[key] = b
		}
		if r.Date < b.start {
			b.start = r.Date
		}
		if r.Date > b.end {
			b.end = r.Date
		}
		b.users[r.UserID] = true
		b.userDays[r.Date+"|"+r.UserID] = true
		b.totalHours += r.HoursWorked
		b.rowCount++
	}

	out := make([]WeeklySummaryRow, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, WeeklySummaryRow{
			Week:           key,
			WeekStart:      b.start,
			WeekEnd:        b.end,
			UniqueStaff:    len(b.users),
			DaysWorked:     len(b.userDays),
			TotalHours:     hours.Round(b.totalHours),
			AvgHoursPerDay: avg(b.totalHours, b.rowCount),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week > out[j].Week })
	return out, nil
}

// MonthlySummary covers the past 12 months of completed records, newest
// first.
func (s *service) MonthlySummary(ctx context.Context) ([]MonthlySummaryRow, error) {
	from := s.clock.Now().AddDate(0, 0, -365).Format(clock.DateLayout)
	rows, err := s.repo.ListCompleteFrom(ctx, from)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		users      map[string]bool
		userDays   map[string]bool
		totalHours float64
		breakHours float64
		rowCount   int
	}
	buckets := make(map[string]*bucket)
	for _, r := range rows {
		if len(r.Date) < 7 {
			continue
		}
		key := r.Date[:7]
		b, ok := buckets[key]
		if !ok {
			b = &bucket{users: make(map[string]bool), userDays: make(map[string]bool)}
			buckets[key] = b
		}
		b.users[r.UserID] = true
		b.userDays[r.Date+"|"+r.UserID] = true
		b.totalHours += r.HoursWorked
		b.breakHours += r.BreakDuration
		b.rowCount++
	}

	out := make([]MonthlySummaryRow, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, MonthlySummaryRow{
			Month:           key,
			MonthName:       monthName(key),
			UniqueStaff:     len(b.users),
			DaysWorked:      len(b.userDays),
			TotalHours:      hours.Round(b.totalHours),
			AvgHoursPerDay:  avg(b.totalHours, b.rowCount),
			TotalBreakHours: hours.Round(b.breakHours),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

// Week groups this week's completed hours per person, Monday to today.
func (s *service) Week(ctx context.Context) ([]WeekRow, error) {
	rows, err := s.repo.ListCompleteFrom(ctx, s.mondayOfWeek())
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*WeekRow)
	var order []string
	for _, r := range rows {
		w, ok := totals[r.Name]
		if !ok {
			w = &WeekRow{Name: r.Name}
			totals[r.Name] = w
			order = append(order, r.Name)
		}
		w.TotalHours = hours.Round(w.TotalHours + r.HoursWorked)
		w.DaysWorked++
	}

	out := make([]WeekRow, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalHours > out[j].TotalHours })
	return out, nil
}

func (s *service) TodayTasks(ctx context.Context) ([]TaskRow, error) {
	rows, err := s.repo.TasksByDate(ctx, s.clock.Today())
	if err != nil {
		return nil, err
	}
	return taskRows(rows, false), nil
}

func (s *service) RecentTasks(ctx context.Context, limit int) ([]TaskRow, error) {
	rows, err := s.repo.RecentTasks(ctx, limit)
	if err != nil {
		return nil, err
	}
	return taskRows(rows, true), nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	var (
		st  Stats
		err error
	)

	if st.TotalAttendance, err = s.repo.CountAttendance(ctx); err != nil {
		return Stats{}, err
	}
	if st.TotalTasks, err = s.repo.CountTasks(ctx); err != nil {
		return Stats{}, err
	}
	if st.TotalHours, err = s.repo.SumCompletedHours(ctx); err != nil {
		return Stats{}, err
	}
	if st.WeekHours, err = s.repo.SumCompletedHoursFrom(ctx, s.mondayOfWeek()); err != nil {
		return Stats{}, err
	}

	today := s.clock.Today()
	if st.CurrentlyWorking, err = s.repo.CountStatusOnDate(ctx, today, attendance.StatusClockedIn); err != nil {
		return Stats{}, err
	}
	if st.OnBreak, err = s.repo.CountStatusOnDate(ctx, today, attendance.StatusOnBreak); err != nil {
		return Stats{}, err
	}

	st.TotalHours = hours.Round(st.TotalHours)
	st.WeekHours = hours.Round(st.WeekHours)
	return st, nil
}

func (s *service) mondayOfWeek() string {
	now := s.clock.Now()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -daysSinceMonday).Format(clock.DateLayout)
}

func weekKey(date string) string {
	t, err := time.Parse(clock.DateLayout, date)
	if err != nil {
		return date
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func monthName(yearMonth string) string {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return yearMonth
	}
	return t.Format("January 2006")
}

func taskRows(rows []task.Entry, withDate bool) []TaskRow {
	out := make([]TaskRow, len(rows))
	for i, r := range rows {
		out[i] = TaskRow{
			Name:      r.Name,
			Task:      r.Description,
			URL:       r.URL,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
		if withDate {
			out[i].Date = r.Date
		}
	}
	return out
}

func avg(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return hours.Round(total / float64(n))
}
