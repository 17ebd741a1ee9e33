package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SnapshotRepository interface {
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap entity.Snapshot) error

	// Load returns the stored snapshot. The boolean is false if nothing was
	// ever saved.
	Load(ctx context.Context) (entity.Snapshot, bool, error)

	// SavedAt returns when the stored snapshot was written.
	SavedAt(ctx context.Context) (time.Time, error)
}

type snapshotRepository struct {
	now func() time.Time
}

func NewSnapshotRepository() SnapshotRepository {
	return &snapshotRepository{now: time.Now}
}

func (r *snapshotRepository) Save(ctx context.Context, snap entity.Snapshot) error {
	rows := toRows(snap)

	return xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
		db := xcontext.DB(ctx)
		for _, model := range Models() {
			if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		if err := createAll(db, rows.users); err != nil {
			return err
		}
		if err := createAll(db, rows.saplings); err != nil {
			return err
		}
		if err := createAll(db, rows.updates); err != nil {
			return err
		}
		if err := createAll(db, rows.posts); err != nil {
			return err
		}
		if err := createAll(db, rows.likes); err != nil {
			return err
		}
		if err := createAll(db, rows.comments); err != nil {
			return err
		}
		if err := createAll(db, rows.challenges); err != nil {
			return err
		}

		return db.Create(&snapshotMetaRow{ID: 1, SavedAt: r.now()}).Error
	})
}

func (r *snapshotRepository) Load(ctx context.Context) (entity.Snapshot, bool, error) {
	db := xcontext.DB(ctx).WithContext(ctx)

	var meta snapshotMetaRow
	if err := db.Take(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Snapshot{}, false, nil
		}
		return entity.Snapshot{}, false, err
	}

	var rows snapshotRows
	if err := db.Order("position").Find(&rows.users).Error; err != nil {
		return entity.Snapshot{}, false, err
	}
	if err := db.Order("position").Find(&rows.saplings).Error; err != nil {
		return entity.Snapshot{}, false, err
	}
	if err := db.Order("sapling_id, position").Find(&rows.updates).Error; err != nil {
		return entity.Snapshot{}, false, err
	}
	if err := db.Order("position").Find(&rows.posts).Error; err != nil {
		return entity.Snapshot{}, false, err
	}
	if err := db.Order("post_id, position").Find(&rows.likes).Error; err != nil {
		return entity.Snapshot{}, false, err
	}
	if err := db.Order("post_id, position").Find(&rows.comments).Error; err != nil {
		return entity.Snapshot{}, false, err
	}
	if err := db.Order("position").Find(&rows.challenges).Error; err != nil {
		return entity.Snapshot{}, false, err
	}

	return fromRows(rows), true, nil
}

func (r *snapshotRepository) SavedAt(ctx context.Context) (time.Time, error) {
	var meta snapshotMetaRow
	if err := xcontext.DB(ctx).WithContext(ctx).Take(&meta).Error; err != nil {
		return time.Time{}, err
	}
	return meta.SavedAt, nil
}

func createAll[T any](db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return db.CreateInBatches(rows, 100).Error
}
