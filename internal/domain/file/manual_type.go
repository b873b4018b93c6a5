package file

type ManualType string

const (
	ManualSpare       ManualType = "spare_manual"
	ManualOperation   ManualType = "operation_manual"
	ManualMaintenance ManualType = "maintenance_manual"
	ManualUser        ManualType = "user_manual"
)

var knownManualTypes = map[ManualType]struct{}{
	ManualSpare:       {},
	ManualOperation:   {},
	ManualMaintenance: {},
	ManualUser:        {},
}

// IsKnown reports whether t is one of the recognized categories. The set is
// advisory: unknown values are still stored.
func (t ManualType) IsKnown() bool {
	_, ok := knownManualTypes[t]
	return ok
}

func KnownManualTypes() []ManualType {
	return []ManualType{ManualSpare, ManualOperation, ManualMaintenance, ManualUser}
}
