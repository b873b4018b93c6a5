package file

import (
	"time"
)

type (
	File struct {
		ID           string    `json:"id"`
		MdsID        string    `json:"mdsId"`
		MdsNumber    string    `json:"mdsNumber"`
		CompanyID    string    `json:"companyId"`
		CompanyName  string    `json:"companyName"`
		ManualType   string    `json:"manualType"`
		Filename     string    `json:"filename"`
		OriginalName string    `json:"originalName"`
		UploadDate   time.Time `json:"uploadDate"`
		FileURL      string    `json:"fileUrl"`
	}
	Files []File
)
