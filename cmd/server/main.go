package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inkwell/internal/platform/config"
	"inkwell/internal/platform/httpserver"
	"inkwell/internal/platform/logger"
	platformmetrics "inkwell/internal/platform/metrics"
	platformredis "inkwell/internal/platform/redis"
	postcache "inkwell/internal/post/cache"
	posthandler "inkwell/internal/post/handler"
	postmetrics "inkwell/internal/post/metrics"
	poststore "inkwell/internal/post/store"
	"inkwell/internal/storage"
	transloghandler "inkwell/internal/translog/handler"
	translogsvc "inkwell/internal/translog/service"
	translogmem "inkwell/internal/translog/store/memory"
	translogpg "inkwell/internal/translog/store/postgres"
	userhandler "inkwell/internal/user/handler"
	userstore "inkwell/internal/user/store"
	"inkwell/pkg/notify"
	"inkwell/pkg/platform/middleware/admin"
	"inkwell/pkg/platform/middleware/auth"
	"inkwell/pkg/platform/middleware/metadata"
	"inkwell/pkg/platform/middleware/requesttime"

	postsvc "inkwell/internal/post/service"
	usersvc "inkwell/internal/user/service"
)

// main wires storage, services, and the HTTP router. Business rules live
// in the internal service packages; everything here is assembly.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	// Storage backend: Postgres when a DSN is configured, in-memory
	// otherwise. Both give the same all-or-nothing guarantee for the
	// post-write/log-write pair.
	var (
		db *sql.DB

		posts interface {
			postsvc.PostStore
			usersvc.PostCascade
		}
		logs interface {
			postsvc.LogStore
			usersvc.LogDetacher
			translogsvc.Store
		}
		users interface {
			usersvc.UserStore
			postsvc.UsernameResolver
		}
		tx postsvc.StoreTx
	)

	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			log.Error("failed to reach postgres", "error", err)
			os.Exit(1)
		}

		posts = poststore.NewPostgres(db)
		logs = translogpg.New(db)
		users = userstore.NewPostgres(db)
		tx = storage.NewPostgresTx(db)
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory storage")
		p := poststore.NewInMemory()
		l := translogmem.New()
		u := userstore.NewInMemory()
		posts, logs, users = p, l, u
		tx = storage.NewMemoryTx(p, l, u)
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, public cache disabled", "error", err)
		redisClient = nil
	}

	notifier := notify.Slog{Logger: log}
	postMetrics := postmetrics.New()

	postOpts := []postsvc.Option{
		postsvc.WithLogger(log),
		postsvc.WithMetrics(postMetrics),
		postsvc.WithNotifier(notifier, cfg.AdminEmails),
	}
	if redisClient != nil {
		postOpts = append(postOpts, postsvc.WithPublicCache(
			postcache.New(redisClient, cfg.PublicCacheTTL, log),
		))
	}

	postService := postsvc.New(posts, logs, users, tx, postOpts...)
	translogService := translogsvc.New(logs, translogsvc.WithLogger(log))
	userService := usersvc.New(users, posts, logs, tx,
		usersvc.WithLogger(log),
		usersvc.WithNotifier(notifier),
		usersvc.WithMetrics(platformmetrics.New()),
	)

	postHandler := posthandler.New(postService, log)
	translogHandler := transloghandler.New(translogService, log)
	userHandler := userhandler.New(userService)

	validator := auth.NewValidator(cfg.JWTSigningKey)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(metadata.RequestID)
	r.Use(requesttime.Pin)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(db, redisClient))

	// Anonymous read-only surface.
	postHandler.RegisterPublic(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, log))
		postHandler.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(admin.RequireSuperuser(log))
			postHandler.RegisterArchive(r)
			translogHandler.Register(r)
			userHandler.Register(r)
		})
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting inkwell", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

func healthHandler(db *sql.DB, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "cache unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
