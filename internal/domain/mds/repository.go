package mds

import (
	"context"
)

// Repository persists MDS entries. CreateEntry must enforce uniqueness of
// MdsNumber across all entries and report a duplicate with errs.ErrConflict.
type Repository interface {
	FetchEntryByID(ctx context.Context, id ID) (*Entry, error)
	FetchEntryByNumber(ctx context.Context, mdsNumber string) (*Entry, error)
	// FetchEntriesByIDs skips unknown ids and orders by MdsNumber ascending.
	FetchEntriesByIDs(ctx context.Context, ids []ID) (Entries, error)
	CreateEntry(ctx context.Context, e Entry) (*Entry, error)
}
