package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"contracheque/internal/domain/payroll"
	"contracheque/internal/platform/config"
	"contracheque/internal/platform/db"
	"contracheque/internal/platform/logger"
	"contracheque/internal/platform/metrics"
	"contracheque/internal/platform/sessions"
	payrollhandler "contracheque/internal/transport/http/handlers/payroll"
	"contracheque/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Logger  zerolog.Logger
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Metrics *metrics.Collector
	Service *payroll.Service
	Router  http.Handler

	memory *sessions.MemoryStore
}

// New wires the calculator with its tables, the session store and the HTTP
// router. Tables come from Postgres when DATABASE_URL is set and from the
// JSON feeds otherwise.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: log, Metrics: metrics.New()}

	salaries, taxes, err := app.loadTables(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	if !salaries.Has(payroll.GrantedFuncRefRole, payroll.GrantedFuncRefClass, payroll.GrantedFuncRefStep) {
		log.Warn().
			Str("role", payroll.GrantedFuncRefRole).
			Msg("granted function reference cell missing from salary table, P307 will be zero")
	}

	store, err := app.sessionStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	calc := payroll.NewCalculator(salaries, taxes, payroll.WithProductivityBaseRate(cfg.ProductivityBaseRate))
	app.Service = payroll.NewService(calc, store)
	app.Router = app.routes()
	return app, nil
}

func (a *App) loadTables(ctx context.Context) (payroll.SalaryTable, payroll.TaxTable, error) {
	if a.Config.DatabaseURL == "" {
		salaries, err := payroll.LoadSalaryTableFile(a.Config.SalaryTablePath)
		if err != nil {
			return nil, payroll.TaxTable{}, err
		}
		taxes, err := payroll.LoadTaxTableFile(a.Config.TaxTablePath)
		if err != nil {
			return nil, payroll.TaxTable{}, err
		}
		a.Logger.Info().Str("salaries", a.Config.SalaryTablePath).Str("taxes", a.Config.TaxTablePath).Msg("tables loaded from files")
		return salaries, taxes, nil
	}

	pool, err := db.Connect(ctx, a.Config)
	if err != nil {
		return nil, payroll.TaxTable{}, fmt.Errorf("db connect failed: %w", err)
	}
	a.DB = pool

	if a.Config.RunMigrations {
		if err := db.Migrate(ctx, pool, a.Config.MigrationsDir); err != nil {
			return nil, payroll.TaxTable{}, fmt.Errorf("migrations failed: %w", err)
		}
	}

	store := payroll.NewStore(pool)
	if a.Config.RunSeed {
		if err := db.Seed(ctx, store, a.Config); err != nil {
			return nil, payroll.TaxTable{}, fmt.Errorf("seed failed: %w", err)
		}
	}

	salaries, err := store.LoadSalaryTable(ctx)
	if err != nil {
		return nil, payroll.TaxTable{}, err
	}
	taxes, err := store.LoadTaxTable(ctx)
	if err != nil {
		return nil, payroll.TaxTable{}, err
	}
	a.Logger.Info().Int("roles", len(salaries)).Msg("tables loaded from database")
	return salaries, taxes, nil
}

func (a *App) sessionStore(ctx context.Context) (payroll.SessionStore, error) {
	if a.Config.RedisAddr == "" {
		a.memory = sessions.NewMemoryStore(a.Config.SessionTTL)
		return a.memory, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	a.Redis = client
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return sessions.NewRedisStore(client, a.Config.SessionTTL), nil
}

func (a *App) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Logger))
	router.Use(middleware.Recoverer(a.Logger))
	router.Use(middleware.Metrics(a.Metrics))
	router.Use(middleware.SecureHeaders(a.Config.IsProduction()))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if a.DB != nil {
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		if a.Redis != nil {
			if err := a.Redis.Ping(ctx).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Handle("/metrics", a.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
		r.Use(middleware.RateLimit(a.Config.RateLimitPerMinute, time.Minute))

		payrollHandler := payrollhandler.NewHandler(a.Service, a.Metrics)
		payrollHandler.RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: a.Config.FrontendDir, indexPath: "index.html"})
	return router
}

// sweepSessions drops expired in-memory sessions until ctx is done. Redis
// expires keys on its own.
func (a *App) sweepSessions(ctx context.Context) {
	if a.memory == nil {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := a.memory.Sweep(); removed > 0 {
				a.Logger.Debug().Int("removed", removed).Msg("expired sessions swept")
			}
		}
	}
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()
	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer app.Close()

	go app.sweepSessions(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Addr).Msg("contracheque server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
