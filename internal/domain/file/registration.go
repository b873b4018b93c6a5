package file

import "strings"

// Registration is the input of a file registration. Filename is the stored
// name the upload handler already placed on durable storage.
type Registration struct {
	MdsNumber    string
	CompanyName  string
	ManualType   ManualType
	Filename     string
	OriginalName string
}

// Normalize trims surrounding whitespace from every field.
func (r Registration) Normalize() Registration {
	return Registration{
		MdsNumber:    strings.TrimSpace(r.MdsNumber),
		CompanyName:  strings.TrimSpace(r.CompanyName),
		ManualType:   ManualType(strings.TrimSpace(string(r.ManualType))),
		Filename:     strings.TrimSpace(r.Filename),
		OriginalName: strings.TrimSpace(r.OriginalName),
	}
}

// Missing returns a message per required field that is empty. Call it on a
// normalized value so whitespace-only input counts as empty.
func (r Registration) Missing() map[string]string {
	missing := make(map[string]string)
	if r.MdsNumber == "" {
		missing["mdsNumber"] = "mdsNumber is required"
	}
	if r.CompanyName == "" {
		missing["companyName"] = "companyName is required"
	}
	if r.ManualType == "" {
		missing["manualType"] = "manualType is required"
	}
	if r.Filename == "" {
		missing["filename"] = "filename is required"
	}
	return missing
}
