// Package blob stores uploaded file bytes on local disk.
package blob

import (
	"fmt"
	"strings"

	"mds-registry-api/internal/domain/errs"
)

// ValidName rejects names that could escape the storage root.
func ValidName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || strings.ContainsRune(name, 0) {
		return errs.NewValidation(map[string]string{"filename": fmt.Sprintf("invalid filename %q", name)})
	}
	return nil
}
