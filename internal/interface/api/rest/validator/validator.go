package validator

import (
	"strings"
	"unicode/utf8"

	"mds-registry-api/internal/infrastructure/blob"
	"mds-registry-api/internal/interface/api/rest/dto/auth"
)

const maxPasswordLen = 72 // bcrypt safe

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}

	// password is not trimmed, only checked for blanks
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(r.Password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateParam rejects path parameters that are blank after trimming.
func ValidateParam(name, value string) map[string]string {
	if strings.TrimSpace(value) == "" {
		return map[string]string{name: name + " is required"}
	}
	return nil
}

// ValidateFilename accepts only bare stored names, never paths.
func ValidateFilename(name string) map[string]string {
	if err := blob.ValidName(name); err != nil {
		return map[string]string{"filename": "invalid filename"}
	}
	return nil
}
