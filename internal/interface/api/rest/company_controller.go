package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/infrastructure/jwt"
	"mds-registry-api/internal/interface/api/rest/dto"
	"mds-registry-api/internal/interface/api/rest/dto/company"
	"mds-registry-api/internal/interface/api/rest/dto/file"
	"mds-registry-api/internal/interface/api/rest/middleware"
)

type CompanyController struct {
	registry ports.Registry
	logger   *zap.Logger
}

func NewCompanyController(
	r *gin.Engine,
	registry ports.Registry,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *CompanyController {
	cc := &CompanyController{
		registry: registry,
		logger:   logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.GET(RouteCompanies, auth, cc.GetCompaniesHandler)
	r.GET(RouteCompaniesHierarchy, auth, cc.GetHierarchyHandler)
	r.GET(RouteCompany, auth, cc.GetCompanyHandler)
	r.GET(RouteCompanyFiles, auth, cc.GetCompanyFilesHandler)
	r.GET(RouteCompanyMdsEntries, auth, cc.GetCompanyMdsEntriesHandler)

	return cc
}

func (cc *CompanyController) GetCompaniesHandler(c *gin.Context) {
	summaries, err := cc.registry.Companies(c.Request.Context())
	if err != nil {
		abortWithError(c, cc.logger, "Companies()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Companies retrieved successfully",
		Data:    company.ToResponseSummaries(summaries),
	})
}

func (cc *CompanyController) GetHierarchyHandler(c *gin.Context) {
	nodes, err := cc.registry.CompaniesHierarchy(c.Request.Context())
	if err != nil {
		abortWithError(c, cc.logger, "CompaniesHierarchy()", "", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Company hierarchy retrieved successfully",
		Data:    company.ToResponseNodes(nodes),
	})
}

func (cc *CompanyController) GetCompanyHandler(c *gin.Context) {
	co, err := cc.registry.Company(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		abortWithError(c, cc.logger, "Company()", "Company not found", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Company retrieved successfully",
		Data:    company.ToResponseCompany(*co),
	})
}

func (cc *CompanyController) GetCompanyFilesHandler(c *gin.Context) {
	fs, err := cc.registry.CompanyFiles(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		abortWithError(c, cc.logger, "CompanyFiles()", "Company not found", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "Files retrieved successfully",
		Data:    file.ToResponseFiles(fs),
	})
}

func (cc *CompanyController) GetCompanyMdsEntriesHandler(c *gin.Context) {
	node, err := cc.registry.CompanyHierarchy(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		abortWithError(c, cc.logger, "CompanyHierarchy()", "Company not found", err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Message: "MDS entries retrieved successfully",
		Data:    company.ToResponseNode(*node),
	})
}
