package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/namemap"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

type call struct {
	op     string
	name   string
	date   string
	at     string
	timeIn *string
}

type fakeAttendance struct {
	calls []call
	err   error
}

func (f *fakeAttendance) TimeIn(ctx context.Context, userID, name, date, timeIn string) (*attendance.Record, error) {
	f.calls = append(f.calls, call{op: "time_in", name: name, date: date, at: timeIn})
	return &attendance.Record{}, f.err
}

func (f *fakeAttendance) BreakStart(ctx context.Context, userID, name, date, at string) (*attendance.Record, error) {
	f.calls = append(f.calls, call{op: "break_start", name: name, date: date, at: at})
	return &attendance.Record{}, f.err
}

func (f *fakeAttendance) BreakEnd(ctx context.Context, userID, name, date, at string) (*attendance.Record, error) {
	f.calls = append(f.calls, call{op: "break_end", name: name, date: date, at: at})
	return &attendance.Record{}, f.err
}

func (f *fakeAttendance) TimeOut(ctx context.Context, userID, name, date string, timeIn *string, timeOut string) (*attendance.Record, error) {
	f.calls = append(f.calls, call{op: "time_out", name: name, date: date, at: timeOut, timeIn: timeIn})
	return &attendance.Record{}, f.err
}

type loggedTask struct {
	description string
	url         *string
}

type fakeTasks struct {
	logged []loggedTask
}

func (f *fakeTasks) Log(ctx context.Context, userID, name, date, description string, url *string) (*task.Entry, error) {
	f.logged = append(f.logged, loggedTask{description: description, url: url})
	return &task.Entry{}, nil
}

type fakeDedup struct {
	seen bool
}

func (f *fakeDedup) Seen(ctx context.Context, msg Message) (bool, error) {
	return f.seen, nil
}

const channelID = "C12345"

func newTestProcessor(t *testing.T, att *fakeAttendance, tasks *fakeTasks, dedup Deduper) *Processor {
	t.Helper()
	if dedup == nil {
		dedup = NewNoopDeduper()
	}
	clk := clock.NewFixed(time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC))
	return NewProcessor(att, tasks, namemap.NewResolver(t.TempDir()), dedup, clk, channelID)
}

func msg(text string) Message {
	return Message{
		ID:        "1700000000.000100",
		ChannelID: channelID,
		UserID:    "user-123",
		Username:  "juan.d",
		Text:      text,
		Timestamp: time.Date(2026, 2, 17, 1, 0, 0, 0, time.UTC),
	}
}

func TestProcess_TimeIn(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	ack, err := p.Process(context.Background(), msg("Time In: 9:00 AM"))
	assert.NoError(t, err)
	assert.Equal(t, AckSaved, ack)
	assert.Equal(t, "time_in", att.calls[0].op)
	assert.Equal(t, "2026-02-17", att.calls[0].date)
	// No explicit Name and no mapping: platform username wins.
	assert.Equal(t, "juan.d", att.calls[0].name)
}

func TestProcess_ExplicitNameOverride(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	_, err := p.Process(context.Background(), msg("Name: Juan Dela Cruz\nTime In: 9:00 AM"))
	assert.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", att.calls[0].name)
}

func TestProcess_ExplicitDateOverride(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	_, err := p.Process(context.Background(), msg("Date: 15 Feb 2026\nTime In: 9:00 AM"))
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-15", att.calls[0].date)
}

func TestProcess_UnparseableDateFallsBackToTimestamp(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	_, err := p.Process(context.Background(), msg("Date: 15 Febtember 2026\nTime In: 9:00 AM"))
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-17", att.calls[0].date)
}

func TestProcess_BreakPrecedesTimeOut(t *testing.T) {
	// A message matching both break and time-out patterns must take the
	// break branch; the pattern order is load-bearing.
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	ack, err := p.Process(context.Background(), msg("On Break: 12:00 PM\nTime Out: 5:00 PM"))
	assert.NoError(t, err)
	assert.Equal(t, AckBreak, ack)
	assert.Equal(t, "break_start", att.calls[0].op)
	assert.Len(t, att.calls, 1)
}

func TestProcess_TimeOutReportWithTasks(t *testing.T) {
	att := &fakeAttendance{}
	tasks := &fakeTasks{}
	p := newTestProcessor(t, att, tasks, nil)

	text := `Time In: 9:00 AM
Time Out: 5:30 PM

Tasks:
- First deliverable
- Second deliverable
- Third deliverable

Links: https://example.com/a https://example.com/b`

	ack, err := p.Process(context.Background(), msg(text))
	assert.NoError(t, err)
	assert.Equal(t, AckReport, ack)

	assert.Equal(t, "time_out", att.calls[0].op)
	assert.Equal(t, "5:30 PM", att.calls[0].at)
	assert.Equal(t, "9:00 AM", *att.calls[0].timeIn)

	// Positional pairing: first two tasks carry URLs, the third none.
	assert.Len(t, tasks.logged, 3)
	assert.Equal(t, "https://example.com/a", *tasks.logged[0].url)
	assert.Equal(t, "https://example.com/b", *tasks.logged[1].url)
	assert.Nil(t, tasks.logged[2].url)
}

func TestProcess_SequencingViolationIsVisibleNotFatal(t *testing.T) {
	att := &fakeAttendance{err: attendance.ErrNoOpenBreak}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	ack, err := p.Process(context.Background(), msg("Back from break: 12:45 PM"))
	assert.NoError(t, err)
	assert.Equal(t, AckFailed, ack)
}

func TestProcess_IgnoresOtherChannels(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	m := msg("Time In: 9:00 AM")
	m.ChannelID = "C99999"
	ack, err := p.Process(context.Background(), m)
	assert.NoError(t, err)
	assert.Equal(t, AckNone, ack)
	assert.Empty(t, att.calls)
}

func TestProcess_NoPatternNoEvent(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, nil)

	ack, err := p.Process(context.Background(), msg("good morning everyone"))
	assert.NoError(t, err)
	assert.Equal(t, AckNone, ack)
	assert.Empty(t, att.calls)
}

func TestProcess_DuplicateDeliverySkipped(t *testing.T) {
	att := &fakeAttendance{}
	p := newTestProcessor(t, att, &fakeTasks{}, &fakeDedup{seen: true})

	ack, err := p.Process(context.Background(), msg("Time In: 9:00 AM"))
	assert.NoError(t, err)
	assert.Equal(t, AckNone, ack)
	assert.Empty(t, att.calls)
}
