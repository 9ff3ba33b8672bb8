package storage

import (
	"context"
	"fmt"
	"log/slog"

	"igreja/internal/core"
)

// DeleteChurch detaches the church's pastors and then removes the church,
// in one transaction. A missing church rolls the transaction back and
// reports core.ErrNotFound. It returns the number of pastors detached.
func (r *Repository) DeleteChurch(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	q := r.queries.WithTx(tx)

	detached, err := q.DetachPastorsFromChurch(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("detach pastors from church %d: %w", id, err)
	}

	n, err := q.DeleteChurch(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete church %d: %w", id, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("church %d: %w", id, core.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	committed = true

	slog.InfoContext(ctx, "Church deleted", "id", id, "pastors_detached", detached)
	return detached, nil
}
