package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
	"github.com/mediqueue/mediqueue/internal/platform/events"
)

const resetMessage = "Queue reset successfully."

// Limits caps the queue view and the recent-log view.
type Limits struct {
	Queue int
	Log   int
}

// DefaultLimits are the clinic's standard caps.
var DefaultLimits = Limits{Queue: 30, Log: 20}

type Service struct {
	repo   Repository
	pub    events.Publisher
	logger zerolog.Logger
	limits Limits
}

// NewService wires the queue store. pub may be nil; publication is best
// effort and happens only after the write committed.
func NewService(repo Repository, pub events.Publisher, logger zerolog.Logger, limits Limits) *Service {
	if limits.Queue <= 0 {
		limits.Queue = DefaultLimits.Queue
	}
	if limits.Log <= 0 {
		limits.Log = DefaultLimits.Log
	}
	return &Service{repo: repo, pub: pub, logger: logger, limits: limits}
}

func (s *Service) Limits() Limits { return s.limits }

// Append persists e and fills in its id and creation time.
func (s *Service) Append(ctx context.Context, e *Entry) error {
	if err := s.repo.Append(ctx, e); err != nil {
		return apperr.Storage("append queue entry", err)
	}
	s.publish(ctx, events.TypeEntryAdded, e)
	return nil
}

// List returns the queue in service order with positions assigned.
func (s *Service) List(ctx context.Context, limit int) ([]*Entry, error) {
	items, err := s.repo.List(ctx, s.clamp(limit, s.limits.Queue))
	if err != nil {
		return nil, apperr.Storage("list queue", err)
	}
	Number(items)
	return nonNil(items), nil
}

// Recent returns the newest entries first, without queue positions.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	items, err := s.repo.Recent(ctx, s.clamp(limit, s.limits.Log))
	if err != nil {
		return nil, apperr.Storage("list recent entries", err)
	}
	return nonNil(items), nil
}

// Clear removes every entry.
func (s *Service) Clear(ctx context.Context) (ResetResult, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return ResetResult{}, apperr.Storage("reset queue", err)
	}
	res := ResetResult{Message: resetMessage, RemovedCount: n}
	s.publish(ctx, events.TypeQueueReset, res)
	return res, nil
}

func (s *Service) clamp(limit, ceiling int) int {
	if limit <= 0 || limit > ceiling {
		return ceiling
	}
	return limit
}

func (s *Service) publish(ctx context.Context, typ string, data interface{}) {
	if s.pub == nil {
		return
	}
	ev, err := events.New(events.TopicQueue, typ, data)
	if err == nil {
		err = s.pub.Publish(ctx, ev)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("event", typ).Msg("queue event publication failed")
	}
}

func nonNil(items []*Entry) []*Entry {
	if items == nil {
		return []*Entry{}
	}
	return items
}
