package migration

import (
	"context"

	"github.com/vriksha-lab/backend/pkg/xcontext"
)

// Retry keys are looked up on every replayed submission.
func migrate0001(ctx context.Context) error {
	return xcontext.DB(ctx).Exec(
		"CREATE INDEX idx_sapling_updates_submission_key ON sapling_updates (submission_key)",
	).Error
}
