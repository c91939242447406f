package testutil

import (
	"context"
	"time"

	"github.com/scavhunt/backend/config"
	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/logger"
	"github.com/scavhunt/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	// Every connection to ":memory:" opens a distinct database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "test",
		Realtime: config.RealtimeConfigs{
			StorageTimeout: 5 * time.Second,
			SendBufferSize: 64,
			CleanupPeriod:  50 * time.Millisecond,
			WelcomeMessage: "Welcome",
		},
		Hunt: config.HuntConfigs{
			LeaderboardSize: 10,
			HintTemplate:    "Hint for clue %s: Look for something historical in this location.",
		},
		Redis: config.RedisConfigs{
			UserCacheTTL: time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.New("development", logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
