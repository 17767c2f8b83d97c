package ingest

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/extract"
	"github.com/cexutoire/wibiz-attendance-bot/internal/namemap"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/apperror"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

type Processor struct {
	attendance attendance.Service
	tasks      task.Service
	names      *namemap.Resolver
	dedup      Deduper
	clock      clock.Clock
	channelID  string
	logger     *zap.Logger
}

func NewProcessor(
	attendanceSvc attendance.Service,
	taskSvc task.Service,
	names *namemap.Resolver,
	dedup Deduper,
	clk clock.Clock,
	channelID string,
) *Processor {
	return &Processor{
		attendance: attendanceSvc,
		tasks:      taskSvc,
		names:      names,
		dedup:      dedup,
		clock:      clk,
		channelID:  channelID,
		logger:     zap.L().Named("ingest"),
	}
}

// Process runs one message through the extractor and state machine and
// returns the ack marker for the transport. The returned error is only
// non-nil for infrastructure failures; sequencing violations map to
// AckFailed with a nil error.
//
// Pattern precedence is fixed: break-start, then break-end, then
// time-out (which also scans for a time-in), then plain time-in. The
// break patterns must short-circuit before the time branches.
func (p *Processor) Process(ctx context.Context, msg Message) (Ack, error) {
	if msg.ChannelID != p.channelID {
		return AckNone, nil
	}

	seen, err := p.dedup.Seen(ctx, msg)
	if err != nil {
		return AckNone, err
	}
	if seen {
		p.logger.Info("duplicate message skipped",
			zap.String("channel_id", msg.ChannelID), zap.String("message_id", msg.ID))
		return AckNone, nil
	}

	name := p.resolveName(msg)
	date := p.resolveDate(msg)

	if at, ok := extract.BreakStart(msg.Text); ok {
		if _, err := p.attendance.BreakStart(ctx, msg.UserID, name, date, at); err != nil {
			return p.failed(err, msg)
		}
		return AckBreak, nil
	}

	if at, ok := extract.BreakEnd(msg.Text); ok {
		if _, err := p.attendance.BreakEnd(ctx, msg.UserID, name, date, at); err != nil {
			return p.failed(err, msg)
		}
		return AckSaved, nil
	}

	if timeOut, ok := extract.TimeOut(msg.Text); ok {
		var timeIn *string
		if in, ok := extract.TimeIn(msg.Text); ok {
			timeIn = &in
		}

		if _, err := p.attendance.TimeOut(ctx, msg.UserID, name, date, timeIn, timeOut); err != nil {
			return p.failed(err, msg)
		}

		p.logTasks(ctx, msg, name, date)
		return AckReport, nil
	}

	if timeIn, ok := extract.TimeIn(msg.Text); ok {
		if _, err := p.attendance.TimeIn(ctx, msg.UserID, name, date, timeIn); err != nil {
			return p.failed(err, msg)
		}
		return AckSaved, nil
	}

	return AckNone, nil
}

// resolveName applies the name priority: explicit "Name:" in the
// message, then the mapping file, then the platform username.
func (p *Processor) resolveName(msg Message) string {
	if name, ok := extract.Name(msg.Text); ok {
		return name
	}
	return p.names.Resolve(msg.UserID, msg.Username)
}

// dateLayouts accepted for an explicit "Date:" line, e.g. "17 Feb 2026".
var dateLayouts = []string{"2 Jan 2006", "2 January 2006"}

// resolveDate honors an explicit "Date:" line for backfilled reports;
// otherwise the record lands on the message's home-timezone date. An
// unparseable value falls through to the timestamp.
func (p *Processor) resolveDate(msg Message) string {
	if raw, ok := extract.Date(msg.Text); ok {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format(clock.DateLayout)
			}
		}
		p.logger.Warn("unparseable explicit date ignored",
			zap.String("user_id", msg.UserID), zap.String("date", raw))
	}
	return p.clock.DateOf(msg.Timestamp)
}

// logTasks appends every extracted task, pairing the i-th task with the
// i-th URL. Tasks beyond the URL count get no URL; the pairing is
// positional, not semantic.
func (p *Processor) logTasks(ctx context.Context, msg Message, name, date string) {
	tasks := extract.Tasks(msg.Text)
	urls := extract.URLs(msg.Text)

	for i, description := range tasks {
		var url *string
		if i < len(urls) {
			url = &urls[i]
		}
		if _, err := p.tasks.Log(ctx, msg.UserID, name, date, description, url); err != nil {
			p.logger.Error("task log failed",
				zap.String("user_id", msg.UserID), zap.String("date", date), zap.Error(err))
		}
	}
}

// failed decides between "visible rejection" and "infrastructure
// error". Sequencing violations keep the loop running.
func (p *Processor) failed(err error, msg Message) (Ack, error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidState {
		p.logger.Warn("event rejected",
			zap.String("user_id", msg.UserID), zap.String("reason", appErr.Message))
		return AckFailed, nil
	}
	return AckFailed, err
}
