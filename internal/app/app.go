package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/futsal-ledger/internal/config"
	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
	"github.com/riskibarqy/futsal-ledger/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futsal-ledger/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/futsal-ledger/internal/interfaces/httpapi"
	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
	"github.com/riskibarqy/futsal-ledger/internal/usecase"
)

type repositories struct {
	players    player.Repository
	attendance attendance.Repository
	close      func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		var seed []player.Player
		if cfg.AppEnv == config.EnvDev {
			seed = memory.SeedPlayers()
		}
		store := memory.NewStore(seed)
		logger.Info("using memory store", "seeded_players", len(seed))
		return repositories{
			players:    memory.NewPlayerRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			close:      func() error { return nil },
		}, nil
	case config.StorePostgres:
		if cfg.DBAutoMigrate {
			if err := runMigrations(cfg, logger); err != nil {
				return repositories{}, err
			}
		}
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		logger.Info("using postgres store", "db_name", databaseName(cfg.DBURL))
		return repositories{
			players:    postgres.NewPlayerRepository(db),
			attendance: postgres.NewAttendanceRepository(db),
			close:      db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

// NewHTTPServer wires the store, use cases and router. The returned cleanup
// releases the store and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	issuer, err := auth.NewIssuer(cfg.AdminPassword, cfg.AdminTokenSecret, cfg.AdminTokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("build admin issuer: %w", err)
	}
	if cfg.AdminTokenSecret == "" {
		logger.Warn("ADMIN_TOKEN_SECRET empty, admin sessions will not survive a restart")
	}

	scheduleSvc, err := usecase.NewScheduleService(usecase.ScheduleConfig{
		Start:       cfg.ScheduleStart,
		WeeklyCount: cfg.ScheduleWeeks,
		ExtraDates:  cfg.ScheduleExtraDates,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build schedule: %w", err)
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rosterSvc := usecase.NewRosterService(repos.players, logger.Named("roster"))
	attendanceSvc := usecase.NewAttendanceService(repos.players, repos.attendance, logger.Named("attendance"))

	handler := httpapi.NewHandler(rosterSvc, attendanceSvc, scheduleSvc, issuer)
	router := httpapi.NewRouter(handler, issuer, logger.Named("http"), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}
