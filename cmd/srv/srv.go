package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/scavhunt/backend/config"
	"github.com/scavhunt/backend/internal/domain"
	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/logger"
	"github.com/scavhunt/backend/pkg/xcontext"
	"github.com/scavhunt/backend/pkg/xredis"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	closers     []func() error

	userRepo        repository.UserRepository
	huntRepo        repository.HuntRepository
	participantRepo repository.ParticipantRepository
	progressRepo    repository.ProgressRepository
	paymentRepo     repository.PaymentRepository
	locationRepo    repository.LocationRepository
	clueRepo        repository.ClueRepository

	progressDomain domain.ProgressDomain
	huntDomain     domain.HuntDomain
}

// bootstrap loads everything every command needs: configs, logger and an
// up-to-date database.
func (s *srv) bootstrap() error {
	if err := s.loadConfig(); err != nil {
		return err
	}

	s.loadLogger()

	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return s.migrateDB()
}

func (s *srv) loadConfig() error {
	// The .env file is optional, variables may come from the environment.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	l := logger.New(cfg.Env, logger.ParseLevel(cfg.LogLevel))
	s.ctx = xcontext.WithLogger(s.ctx, l)
	s.closers = append(s.closers, func() error {
		l.Sync()
		return nil
	})
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(), // data source name
			DefaultStringSize:         256,                    // default size for string fields
			DisableDatetimePrecision:  true,                   // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,                   // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,                   // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false,                  // auto configure based on currently MySQL version
		})
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	s.closers = append(s.closers, sqlDB.Close)
	return db, nil
}

func (s *srv) migrateDB() error {
	if err := entity.MigrateTable(s.ctx); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}

	return nil
}

func (s *srv) loadRedisClient() error {
	if !xcontext.Configs(s.ctx).Redis.Enabled() {
		xcontext.Logger(s.ctx).Infof("Redis is not configured, user names are read from the database")
		return nil
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	s.redisClient = client
	s.closers = append(s.closers, client.Close)
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.huntRepo = repository.NewHuntRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.progressRepo = repository.NewProgressRepository()
	s.paymentRepo = repository.NewPaymentRepository()
	s.locationRepo = repository.NewLocationRepository()
	s.clueRepo = repository.NewClueRepository()
}

func (s *srv) loadDomains() {
	s.progressDomain = domain.NewProgressDomain(s.participantRepo, s.progressRepo)
	s.huntDomain = domain.NewHuntDomain(
		s.huntRepo, s.userRepo, s.participantRepo, s.paymentRepo, s.progressDomain)
}

// serve runs the http server until the process is asked to stop.
func (s *srv) serve(cfg config.ServerConfigs, handler http.Handler) error {
	httpSrv := &http.Server{
		Addr:    cfg.Address(),
		Handler: handler,
	}

	g, ctx := errgroup.WithContext(s.ctx)
	g.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return httpSrv.Shutdown(context.Background())
	})

	err := g.Wait()
	xcontext.Logger(s.ctx).Infof("Server stop")
	return err
}

func (s *srv) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			fmt.Printf("Cannot release resource: %v\n", err)
		}
	}
}
