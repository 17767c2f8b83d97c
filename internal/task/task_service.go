package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
)

type Service interface {
	// Log appends one task entry. has_link is derived from the URL.
	Log(ctx context.Context, userID, name, date, description string, url *string) (*Entry, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock) Service {
	return &service{
		repo:   repo,
		clock:  clk,
		logger: zap.L().Named("task"),
	}
}

func (s *service) Log(ctx context.Context, userID, name, date, description string, url *string) (*Entry, error) {
	entry := &Entry{
		UserID:      userID,
		Name:        name,
		Date:        date,
		Description: description,
		HasLink:     url != nil && *url != "",
		URL:         url,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("task logged",
		zap.String("name", name), zap.String("date", date), zap.Bool("has_link", entry.HasLink))
	return entry, nil
}
