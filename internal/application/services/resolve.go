package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mds-registry-api/internal/domain/errs"
)

// maxResolveAttempts bounds the fetch/insert loop of a find-or-create. One
// conflict is the normal outcome of a lost race; more means the winner's row
// is not yet visible to us.
const maxResolveAttempts = 3

var clock = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// findOrCreate looks a record up by its natural key and inserts it when
// absent. A unique-constraint conflict on insert means a concurrent caller won
// the race, so the winner is read back instead.
func findOrCreate[T any](
	ctx context.Context,
	fetch func(ctx context.Context) (*T, error),
	create func(ctx context.Context) (*T, error),
) (rec *T, created bool, conflicts int, err error) {
	for attempt := 0; attempt < maxResolveAttempts; attempt++ {
		rec, err = fetch(ctx)
		if err == nil {
			return rec, false, conflicts, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, false, conflicts, err
		}

		rec, err = create(ctx)
		if err == nil {
			return rec, true, conflicts, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, false, conflicts, err
		}
		conflicts++
	}

	return nil, false, conflicts, &errs.StorageError{
		Op:  "find or create",
		Err: fmt.Errorf("unresolved after %d conflicts", conflicts),
	}
}
