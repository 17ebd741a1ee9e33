package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/pkg/logger"
	"github.com/vriksha-lab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ctx := xcontext.WithDB(context.Background(), db)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	require.NoError(t, Migrate(ctx))

	for _, table := range []string{"users", "saplings", "sapling_updates", "social_posts", "post_likes", "post_comments", "challenges", "snapshot_meta"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}

	var count int64
	require.NoError(t, db.Model(&migrationRow{}).Count(&count).Error)
	require.Equal(t, int64(len(migrators)), count)

	require.NoError(t, Migrate(ctx))
	require.NoError(t, db.Model(&migrationRow{}).Count(&count).Error)
	require.Equal(t, int64(len(migrators)), count)
}
