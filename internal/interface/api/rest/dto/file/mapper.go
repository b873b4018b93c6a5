package file

import (
	"mds-registry-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	return File{
		ID:           fDomain.ID,
		MdsID:        fDomain.MdsID,
		MdsNumber:    fDomain.MdsNumber,
		CompanyID:    fDomain.CompanyID,
		CompanyName:  fDomain.CompanyName,
		ManualType:   string(fDomain.ManualType),
		Filename:     fDomain.Filename,
		OriginalName: fDomain.OriginalName,
		UploadDate:   fDomain.UploadDate,
		FileURL:      fDomain.URL(),
	}
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
