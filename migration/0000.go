package migration

import (
	"context"

	"github.com/vriksha-lab/backend/internal/repository"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(repository.Models()...)
}
