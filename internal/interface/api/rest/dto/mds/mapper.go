package mds

import (
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
	dtofile "mds-registry-api/internal/interface/api/rest/dto/file"
)

func ToResponseEntry(eDomain mds.Entry) Entry {
	return Entry{
		ID:        eDomain.ID,
		MdsNumber: eDomain.MdsNumber,
		CreatedAt: eDomain.CreatedAt,
	}
}

func ToResponseEntriesWithCount(in []hierarchy.MdsEntryCount) EntriesWithCount {
	out := make(EntriesWithCount, len(in))
	for idx, ec := range in {
		out[idx] = EntryWithCount{Entry: ToResponseEntry(ec.Entry), FileCount: ec.FileCount}
	}

	return out
}

func ToResponseEntryFiles(eDomain mds.Entry, fs file.Files) EntryFiles {
	return EntryFiles{
		MdsEntry: ToResponseEntry(eDomain),
		Files:    dtofile.ToResponseFiles(fs),
	}
}
