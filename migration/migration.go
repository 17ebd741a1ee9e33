package migration

import (
	"context"
	"time"

	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type migrationRow struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	AppliedAt time.Time
}

func (migrationRow) TableName() string { return "migrations" }

// migrators are applied in order; the index is the version.
var migrators = []func(ctx context.Context) error{
	migrate0000,
	migrate0001,
}

// Migrate applies every migrator that has not been applied yet, each in its
// own transaction.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&migrationRow{}); err != nil {
		return err
	}

	var applied []migrationRow
	if err := xcontext.DB(ctx).Find(&applied).Error; err != nil {
		return err
	}

	done := map[int]bool{}
	for _, m := range applied {
		done[m.Version] = true
	}

	for version, migrate := range migrators {
		if done[version] {
			continue
		}

		err := xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
			if err := migrate(ctx); err != nil {
				return err
			}

			return xcontext.DB(ctx).Create(&migrationRow{Version: version, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return err
		}

		xcontext.Logger(ctx).Infof("Applied migration %04d", version)
	}

	return nil
}
