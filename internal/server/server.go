package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bamreyes/Project-Green/internal/catalog"
	"github.com/bamreyes/Project-Green/internal/config"
	"github.com/bamreyes/Project-Green/internal/logging"
	"github.com/bamreyes/Project-Green/internal/solver"
	"github.com/bamreyes/Project-Green/internal/store"
	"github.com/bamreyes/Project-Green/internal/version"
)

const (
	shutdownTimeout   = 5 * time.Second
	janitorInterval   = 10 * time.Minute
	readHeaderTimeout = 10 * time.Second
)

type stateStore struct {
	db         *store.Store
	catalog    *catalog.Catalog
	solverOpts solver.Options
	cookieName string
	sessionTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func newStateStore(cfg config.File, db *store.Store, cat *catalog.Catalog, logger *zap.Logger) *stateStore {
	return &stateStore{
		db:         db,
		catalog:    cat,
		solverOpts: SolverOptions(cfg),
		cookieName: cfg.Server.SessionCookie,
		sessionTTL: cfg.Server.SessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logging.OrNop(logger),
	}
}

// SolverOptions maps the solver section of the config.
func SolverOptions(cfg config.File) solver.Options {
	opts := solver.Options{
		ProjectMax: cfg.Solver.ProjectMax,
		Round:      cfg.Solver.Round,
	}
	if len(cfg.Solver.Minimums) > 0 {
		opts.Minimums = make(map[catalog.Pollutant]float64, len(cfg.Solver.Minimums))
		for k, v := range cfg.Solver.Minimums {
			opts.Minimums[catalog.Pollutant(k)] = v
		}
	}
	return opts
}

// LoadCatalog reads the project catalog named by the config.
func LoadCatalog(cfg config.File) (*catalog.Catalog, error) {
	return catalog.Load(os.DirFS(cfg.Catalog.Root), cfg.Catalog.Patterns...)
}

// Run serves the web UI until ctx is cancelled.
func Run(ctx context.Context, cfg config.File, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	cat, err := LoadCatalog(cfg)
	if err != nil {
		return err
	}
	db, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RecordStartup(ctx, version.Current(), cat.Len()); err != nil {
		return err
	}

	s := newStateStore(cfg, db, cat, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           buildRouter(s),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("green server started", zap.String("addr", cfg.Server.Addr), zap.Int("projects", cat.Len()))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		logger.Info("green server stopped")
		return nil
	})
	g.Go(func() error {
		s.runSessionJanitor(gctx, janitorInterval)
		return nil
	})
	if cfg.MDNS.Enabled {
		g.Go(func() error {
			stop := startMDNSAdvertiser(cfg.Server.Addr, cfg.MDNS.Instance, logger)
			<-gctx.Done()
			stop()
			return nil
		})
	}
	return g.Wait()
}

// runSessionJanitor prunes expired sessions every interval until ctx ends.
func (s *stateStore) runSessionJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pruneSessions(ctx)
		}
	}
}

func (s *stateStore) pruneSessions(ctx context.Context) {
	n, err := s.db.PruneSessions(ctx, s.now().Add(-s.sessionTTL))
	if err != nil {
		s.logger.Warn("prune sessions failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("pruned expired sessions", zap.Int64("count", n))
	}
}
