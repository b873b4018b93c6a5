// Package idgen allocates string identifiers for registry records.
//
// An id is a UUIDv7 (48-bit millisecond timestamp followed by random bits)
// rendered as 32 hex characters behind an optional prefix. Ids created by one
// process sort in creation order; across processes they are unique with
// overwhelming probability.
package idgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixCompany = "cmp"
	PrefixMds     = "mds"
	PrefixFile    = "file"
	PrefixAccount = "acc"

	sep = "_"
)

// Func is the allocator signature consumed by the directories and the file
// registry.
type Func func(prefix string) string

// New never fails: when the v7 source errors it falls back to a random v4.
func New(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	s := strings.ReplaceAll(id.String(), "-", "")
	if prefix == "" {
		return s
	}

	return prefix + sep + s
}

// Time returns the creation time encoded in an id produced by New.
func Time(id string) (time.Time, bool) {
	if i := strings.LastIndex(id, sep); i >= 0 {
		id = id[i+len(sep):]
	}
	if len(id) != 32 || id[12] != '7' {
		return time.Time{}, false
	}

	ms, err := strconv.ParseInt(id[:12], 16, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.UnixMilli(ms), true
}
