package service

import (
	"context"
	"log/slog"

	"inkwell/internal/translog"
	dErrors "inkwell/pkg/domain-errors"
)

// Store is the read side of the audit trail. Appends happen inside the
// post mutation coordinator, never through this service.
type Store interface {
	List(ctx context.Context) ([]translog.Entry, error)
}

// Service exposes the audit trail to administrators.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the full trail ordered by timestamp ascending.
func (s *Service) List(ctx context.Context) ([]translog.Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transaction log")
	}
	return entries, nil
}
