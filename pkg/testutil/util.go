package testutil

import (
	"context"
	"time"

	"github.com/vriksha-lab/backend/config"
	"github.com/vriksha-lab/backend/internal/domain/broadcast"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/migration"
	"github.com/vriksha-lab/backend/pkg/idutil"
	"github.com/vriksha-lab/backend/pkg/logger"
	"github.com/vriksha-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Now is the fixed clock of every mocked store.
var Now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Log.Level = "silence"
	cfg.File.MaxSize = 1024 * 1024
	cfg.Location.TimeZone = "UTC"
	return cfg
}

// MockContext returns a context carrying test configs, a silent logger and a
// migrated in-memory sqlite database.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a new empty database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

// NewDemoStore returns a store restored from the demo dataset with a fixed
// clock and sequential ids.
func NewDemoStore() *store.Store {
	s := NewStore()
	if err := s.Restore(context.Background(), store.DemoSnapshot(Now)); err != nil {
		panic(err)
	}
	return s
}

func NewStore() *store.Store {
	return store.New(
		broadcast.New(nil),
		store.WithClock(func() time.Time { return Now }),
		store.WithIDGenerator(idutil.NewSequenceGenerator()),
		store.WithRewardPerUpdate(MockConfigs().Gamification.RewardPerUpdate),
	)
}

func Clock() time.Time {
	return Now
}
