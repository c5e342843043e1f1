package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/resumes"
	"job-catalog/internal/services/health"
	"job-catalog/internal/shared/config"
	"job-catalog/internal/shared/server"
	"job-catalog/internal/shared/storage/db"
	"job-catalog/internal/shared/telemetry"
	"job-catalog/internal/vacancies"
)

// App holds the catalog API dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	VacancyRepo    vacancies.Repo
	ResumeRepo     resumes.Repo
	VacancyHandler *vacancies.Handler
	ResumeHandler  *resumes.Handler
	Health         *health.Service
}

// Build prepares storage, services and the API router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil && cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	app := &App{Config: cfg, DB: sqlDB}
	if sqlDB != nil {
		app.VacancyRepo = &vacancies.PGRepo{DB: sqlDB}
		app.ResumeRepo = &resumes.PGRepo{DB: sqlDB}
		app.Health = health.NewService(sqlDB)
	} else {
		app.VacancyRepo = vacancies.NewMemoryRepo()
		app.ResumeRepo = resumes.NewMemoryRepo()
		app.Health = health.NewService(nil)
	}
	app.VacancyHandler = vacancies.NewHandler(vacancies.NewService(app.VacancyRepo))
	app.ResumeHandler = resumes.NewHandler(resumes.NewService(app.ResumeRepo))

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		VacancyHandler: app.VacancyHandler,
		ResumeHandler:  app.ResumeHandler,
		Health:         app.Health,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_storage", telemetry.Fields{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.Shared(ctx, cfg.DatabaseURL, db.PoolFor(db.ProfileLambda))
	} else {
		sqlDB, err = db.Open(ctx, cfg.DatabaseURL, db.PoolFor(db.ProfileServer))
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Err("bootstrap.memory_storage", err, telemetry.Fields{"reason": "database connect failed"})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}
