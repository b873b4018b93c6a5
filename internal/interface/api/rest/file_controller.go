package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/infrastructure/jwt"
	"mds-registry-api/internal/interface/api/rest/dto"
	"mds-registry-api/internal/interface/api/rest/dto/file"
	"mds-registry-api/internal/interface/api/rest/dto/mds"
	"mds-registry-api/internal/interface/api/rest/middleware"
	"mds-registry-api/internal/interface/api/rest/validator"
)

const (
	// uploadField is the multipart field carrying the PDF.
	uploadField = "pdf"
	// formOverhead leaves room for the text fields and multipart framing.
	formOverhead = int64(1 << 20)
)

type FileController struct {
	registry  ports.Registry
	uploads   ports.UploadService
	blobs     ports.BlobStore
	logger    *zap.Logger
	maxUpload int64
}

func NewFileController(
	r *gin.Engine,
	registry ports.Registry,
	uploads ports.UploadService,
	blobs ports.BlobStore,
	maxUpload int64,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		registry:  registry,
		uploads:   uploads,
		blobs:     blobs,
		logger:    logger,
		maxUpload: maxUpload,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.POST(RouteFileUpload, auth, fc.UploadHandler)
	r.GET(RouteFiles, auth, fc.GetFilesHandler)
	r.GET(RouteFile, auth, fc.GetFileHandler)
	r.GET(RouteMdsNumbers, auth, fc.GetMdsNumbersHandler)
	r.GET(RouteMdsFiles, auth, fc.GetMdsFilesHandler)
	r.GET(RouteMdsEntries, auth, fc.GetMdsEntriesHandler)
	r.GET(RouteMdsEntryFiles, auth, fc.GetMdsEntryFilesHandler)
	r.GET(RouteFileDownload, auth, fc.DownloadHandler)

	r.GET(RouteUploads, fc.ServeUploadHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	if fc.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fc.maxUpload+formOverhead)
	}

	var req ports.UploadRequest
	fh, err := c.FormFile(uploadField)
	switch {
	case err == nil:
		req.File = fh
	case errors.Is(err, http.ErrMissingFile):
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.Error{Error: "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid multipart form"})
		return
	}
	req.MdsNumber = c.PostForm("mdsNumber")
	req.CompanyName = c.PostForm("companyName")
	req.ManualType = c.PostForm("manualType")

	f, err := fc.uploads.Upload(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fc.logger, "Upload()", "", err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{
		Message: "File uploaded successfully",
		Data:    file.ToResponseFile(*f),
	})
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	fs, err := fc.registry.ListFiles(c.Request.Context())
	if err != nil {
		abortWithError(c, fc.logger, "ListFiles()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Files retrieved successfully",
		Data:    file.ToResponseFiles(fs),
	})
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	id := c.Param("fileId")
	if errs := validator.ValidateParam("fileId", id); errs != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid file id", Details: errs})
		return
	}

	f, err := fc.registry.File(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fc.logger, "File()", "File not found", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "File retrieved successfully",
		Data:    file.ToResponseFile(*f),
	})
}

func (fc *FileController) GetMdsNumbersHandler(c *gin.Context) {
	numbers, err := fc.registry.MdsNumbers(c.Request.Context())
	if err != nil {
		abortWithError(c, fc.logger, "MdsNumbers()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "MDS numbers retrieved successfully",
		Data:    numbers,
	})
}

func (fc *FileController) GetMdsFilesHandler(c *gin.Context) {
	fs, err := fc.registry.FilesByMds(c.Request.Context(), c.Param("mdsNumber"))
	if err != nil {
		abortWithError(c, fc.logger, "FilesByMds()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Files retrieved successfully",
		Data:    file.ToResponseFiles(fs),
	})
}

func (fc *FileController) GetMdsEntriesHandler(c *gin.Context) {
	entries, err := fc.registry.MdsEntries(c.Request.Context())
	if err != nil {
		abortWithError(c, fc.logger, "MdsEntries()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "MDS entries retrieved successfully",
		Data:    mds.ToResponseEntriesWithCount(entries),
	})
}

func (fc *FileController) GetMdsEntryFilesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	mdsID := c.Param("mdsId")

	entry, err := fc.registry.MdsEntry(ctx, mdsID)
	if err != nil {
		abortWithError(c, fc.logger, "MdsEntry()", "MDS entry not found", err)
		return
	}

	fs, err := fc.registry.FilesByMdsID(ctx, mdsID)
	if err != nil {
		abortWithError(c, fc.logger, "FilesByMdsID()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Files retrieved successfully",
		Data:    mds.ToResponseEntryFiles(*entry, fs),
	})
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	fc.serveBlob(c, true)
}

func (fc *FileController) ServeUploadHandler(c *gin.Context) {
	fc.serveBlob(c, false)
}

func (fc *FileController) serveBlob(c *gin.Context, attachment bool) {
	name := c.Param("filename")
	if errs := validator.ValidateFilename(name); errs != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid filename", Details: errs})
		return
	}

	loc, err := fc.blobs.Locate(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, fc.logger, "Locate()", "File not found", err)
		return
	}

	switch {
	case loc.URL != "":
		c.Redirect(http.StatusFound, loc.URL)
	case attachment:
		c.FileAttachment(loc.Path, name)
	default:
		c.File(loc.Path)
	}
}
