package app

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	attendancerepo "github.com/heartmarshall/precast-backend/internal/adapter/postgres/attendance"
	"github.com/heartmarshall/precast-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/precast-backend/internal/adapter/postgres/product"
	"github.com/heartmarshall/precast-backend/internal/adapter/postgres/productconfig"
	productionrepo "github.com/heartmarshall/precast-backend/internal/adapter/postgres/production"
	userrepo "github.com/heartmarshall/precast-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/precast-backend/internal/adapter/postgres/worker"
	authpkg "github.com/heartmarshall/precast-backend/internal/auth"
	"github.com/heartmarshall/precast-backend/internal/config"
	"github.com/heartmarshall/precast-backend/internal/service/attendance"
	authsvc "github.com/heartmarshall/precast-backend/internal/service/auth"
	"github.com/heartmarshall/precast-backend/internal/service/catalog"
	"github.com/heartmarshall/precast-backend/internal/service/conversion"
	"github.com/heartmarshall/precast-backend/internal/service/production"
	"github.com/heartmarshall/precast-backend/internal/transport/dataloader"
)

// minSweepInterval bounds how often the session janitor wakes up.
const minSweepInterval = time.Minute

// Services is the wired service layer shared by the HTTP server and the
// operator CLI.
type Services struct {
	Auth       *authsvc.Service
	Catalog    *catalog.Service
	Production *production.Service
	Attendance *attendance.Service
	Sessions   *production.Registry

	loaderRepos *dataloader.Repos
}

// NewServices builds repositories and services over pool. Close must be
// called to stop the session janitor.
func NewServices(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *Services {
	txm := postgres.NewTxManager(pool)

	productRepo := product.New(pool)
	configRepo := productconfig.New(pool)
	categoryRepo := category.New(pool)
	recordRepo := productionrepo.New(pool)
	workerRepo := worker.New(pool)
	attendanceRepo := attendancerepo.New(pool)
	userRepo := userrepo.New(pool)

	jwtMgr := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	resolver := conversion.NewResolver(dataloader.NewConfigSource(configRepo))
	sessions := production.NewRegistry(cfg.Production.SessionTTL, sweepInterval(cfg.Production.SessionTTL))

	return &Services{
		Auth:       authsvc.NewService(logger, userRepo, jwtMgr, cfg.Auth),
		Catalog:    catalog.NewService(logger, productRepo, configRepo, categoryRepo, txm, cfg.Production.SearchLimit),
		Production: production.NewService(logger, recordRepo, productRepo, categoryRepo, resolver, txm, sessions),
		Attendance: attendance.NewService(logger, workerRepo, attendanceRepo),
		Sessions:   sessions,

		loaderRepos: &dataloader.Repos{Config: configRepo},
	}
}

// Close stops background work owned by the services.
func (s *Services) Close() {
	s.Sessions.Stop()
}

func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, minSweepInterval)
}
