package ports

import (
	"context"
	"mime/multipart"

	"mds-registry-api/internal/domain/file"
)

type UploadRequest struct {
	MdsNumber   string
	CompanyName string
	ManualType  string
	File        *multipart.FileHeader
}

type UploadService interface {
	Upload(ctx context.Context, req UploadRequest) (*file.File, error)
}
