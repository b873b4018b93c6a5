package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mds-registry-api/internal/application/services"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/interface/api/rest/dto"
)

// abortWithError maps registry errors onto HTTP statuses. Storage and
// unexpected failures are logged and reported as 500 with a generic message.
func abortWithError(c *gin.Context, logger *zap.Logger, op, notFoundMsg string, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, dto.Error{Error: "missing required fields", Details: ve.Fields})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: notFoundMsg})
	case errors.Is(err, services.ErrOnlyPDF):
		c.JSON(http.StatusBadRequest, dto.Error{Error: "Only PDF files are allowed"})
	case errors.Is(err, services.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.Error{Error: "file too large"})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Internal server error"})
		logger.Error(op+" error", zap.Error(err), zap.String("path", c.FullPath()))
	}
}
