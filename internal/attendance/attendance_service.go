package attendance

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/hours"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
)

// Service is the per-user-per-day attendance state machine. All writes
// for one (user, date) key are serialized behind a keyed lock and run in
// a single transaction, so at most one non-complete row can ever exist
// for a key.
type Service interface {
	TimeIn(ctx context.Context, userID, name, date, timeIn string) (*Record, error)
	BreakStart(ctx context.Context, userID, name, date, at string) (*Record, error)
	BreakEnd(ctx context.Context, userID, name, date, at string) (*Record, error)
	TimeOut(ctx context.Context, userID, name, date string, timeIn *string, timeOut string) (*Record, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	clock  clock.Clock
	keys   *keyedMutex
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, clk clock.Clock) Service {
	return &service{
		db:     db,
		repo:   repo,
		clock:  clk,
		keys:   newKeyedMutex(),
		logger: zap.L().Named("attendance"),
	}
}

func (s *service) TimeIn(ctx context.Context, userID, name, date, timeIn string) (*Record, error) {
	unlock := s.keys.Lock(userID + "|" + date)
	defer unlock()

	var saved *Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			return err
		}

		if existing != nil {
			if existing.Status == StatusComplete {
				s.logger.Warn("time-in against completed day ignored",
					zap.String("user_id", userID), zap.String("date", date))
				return ErrDayComplete
			}
			// Re-statement of time-in overwrites the value but does not
			// change status.
			existing.TimeIn = &timeIn
			existing.CreatedAt = s.clock.Now()
			if err := qtx.Update(ctx, existing); err != nil {
				return err
			}
			saved = existing
			return nil
		}

		rec := &Record{
			UserID:    userID,
			Name:      name,
			Date:      date,
			TimeIn:    &timeIn,
			Status:    StatusClockedIn,
			CreatedAt: s.clock.Now(),
		}
		if err := qtx.Create(ctx, rec); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("clocked in",
		zap.String("name", name), zap.String("date", date), zap.String("time_in", timeIn))
	return saved, nil
}

func (s *service) BreakStart(ctx context.Context, userID, name, date, at string) (*Record, error) {
	unlock := s.keys.Lock(userID + "|" + date)
	defer unlock()

	var saved *Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rec, err := qtx.FindByStatus(ctx, userID, date, StatusClockedIn)
		if err != nil {
			return err
		}
		if rec == nil {
			s.logger.Warn("break start with no open clock-in",
				zap.String("user_id", userID), zap.String("date", date))
			return ErrNoOpenClockIn
		}

		rec.BreakStart = &at
		rec.Status = StatusOnBreak
		rec.CreatedAt = s.clock.Now()
		if err := qtx.Update(ctx, rec); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("break started",
		zap.String("name", name), zap.String("date", date), zap.String("break_start", at))
	return saved, nil
}

func (s *service) BreakEnd(ctx context.Context, userID, name, date, at string) (*Record, error) {
	unlock := s.keys.Lock(userID + "|" + date)
	defer unlock()

	var saved *Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rec, err := qtx.FindByStatus(ctx, userID, date, StatusOnBreak)
		if err != nil {
			return err
		}
		if rec == nil {
			s.logger.Warn("break end with no open break",
				zap.String("user_id", userID), zap.String("date", date))
			return ErrNoOpenBreak
		}

		breakStart := ""
		if rec.BreakStart != nil {
			breakStart = *rec.BreakStart
		}

		rec.BreakEnd = &at
		rec.BreakDuration = hours.Elapsed(breakStart, at)
		rec.Status = StatusClockedIn
		rec.CreatedAt = s.clock.Now()
		if err := qtx.Update(ctx, rec); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("break ended",
		zap.String("name", name), zap.String("date", date),
		zap.Float64("break_duration", saved.BreakDuration))
	return saved, nil
}

// TimeOut closes the day. The break amount is read before the
// in-progress row is deleted: the delete would otherwise lose it.
func (s *service) TimeOut(ctx context.Context, userID, name, date string, timeIn *string, timeOut string) (*Record, error) {
	unlock := s.keys.Lock(userID + "|" + date)
	defer unlock()

	var saved *Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		breakDuration, err := qtx.LatestBreakDuration(ctx, userID, date)
		if err != nil {
			return err
		}

		if err := qtx.DeleteInProgress(ctx, userID, date); err != nil {
			return err
		}

		gross := 0.0
		if timeIn != nil {
			gross = hours.Elapsed(*timeIn, timeOut)
		}
		net := hours.Round(gross - breakDuration)

		existing, err := qtx.FindByStatus(ctx, userID, date, StatusComplete)
		if err != nil {
			return err
		}

		if existing != nil {
			// Second close-out for the same day: last write wins.
			existing.TimeIn = timeIn
			existing.TimeOut = &timeOut
			existing.HoursWorked = net
			existing.BreakDuration = breakDuration
			existing.CreatedAt = s.clock.Now()
			if err := qtx.Update(ctx, existing); err != nil {
				return err
			}
			saved = existing
			return nil
		}

		rec := &Record{
			UserID:        userID,
			Name:          name,
			Date:          date,
			TimeIn:        timeIn,
			TimeOut:       &timeOut,
			BreakDuration: breakDuration,
			HoursWorked:   net,
			Status:        StatusComplete,
			CreatedAt:     s.clock.Now(),
		}
		if err := qtx.Create(ctx, rec); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if saved.BreakDuration > 0 {
		s.logger.Info("time-out with break deducted",
			zap.String("name", name), zap.String("date", date),
			zap.Float64("break_duration", saved.BreakDuration),
			zap.Float64("net_hours", saved.HoursWorked))
	} else {
		s.logger.Info("time-out",
			zap.String("name", name), zap.String("date", date),
			zap.Float64("net_hours", saved.HoursWorked))
	}
	return saved, nil
}

// keyedMutex serializes writes per (user, date). Entries are not reaped;
// the key space is bounded by staff size times active days.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
