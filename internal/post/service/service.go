// Package service holds the post mutation coordinator and the access
// layer. Every post mutation commits together with its transaction log
// entry or not at all; reads resolve the caller's visible scope before
// touching the store.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"inkwell/internal/post/metrics"
	"inkwell/internal/post/models"
	"inkwell/internal/translog"
	id "inkwell/pkg/domain"
	"inkwell/pkg/notify"
)

// PostStore is the persistence surface the coordinator needs.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, postID id.PostID) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID id.PostID) error
	List(ctx context.Context, scope models.ListScope) ([]*models.Post, error)
}

// LogStore is the write side of the audit trail. Append participates in
// the ambient transaction carried in ctx.
type LogStore interface {
	Append(ctx context.Context, entry translog.Entry) error
	DetachPost(ctx context.Context, postID id.PostID) error
}

// UsernameResolver maps usernames onto user ids for the list filter.
// Returns sentinel.ErrNotFound for unknown usernames.
type UsernameResolver interface {
	ResolveUsername(ctx context.Context, username string) (id.UserID, error)
}

// StoreTx provides the all-or-nothing boundary around a post mutation
// and its log append. Implementations wrap a database transaction or,
// in-memory, a coarse lock with snapshot rollback.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PublicCache fronts the anonymous published-post listing. All methods
// are best-effort.
type PublicCache interface {
	GetList(ctx context.Context) ([]*models.Post, bool)
	SetList(ctx context.Context, posts []*models.Post)
	Invalidate(ctx context.Context)
}

// Service coordinates post mutations with the transaction log and
// resolves visibility scopes for reads.
type Service struct {
	posts       PostStore
	logs        LogStore
	users       UsernameResolver
	tx          StoreTx
	logger      *slog.Logger
	metrics     *metrics.Metrics
	notifier    notify.Notifier
	adminEmails []string
	cache       PublicCache
	tracer      trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithNotifier enables the post-commit administrator notification hook.
func WithNotifier(n notify.Notifier, adminEmails []string) Option {
	return func(s *Service) {
		s.notifier = n
		s.adminEmails = adminEmails
	}
}

func WithPublicCache(c PublicCache) Option {
	return func(s *Service) { s.cache = c }
}

func New(posts PostStore, logs LogStore, users UsernameResolver, tx StoreTx, opts ...Option) *Service {
	s := &Service{
		posts:  posts,
		logs:   logs,
		users:  users,
		tx:     tx,
		logger: slog.Default(),
		tracer: otel.Tracer("inkwell/post"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
