package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth  = RouteApi + "/auth"
	RouteLogin = RouteAuth + "/login"

	// files
	RouteFiles         = RouteApi + "/files"
	RouteFile          = RouteFiles + "/:fileId"
	RouteFileUpload    = RouteFiles + "/upload"
	RouteFileDownload  = RouteFiles + "/download/:filename"
	RouteMdsNumbers    = RouteFiles + "/mds"
	RouteMdsFiles      = RouteMdsNumbers + "/:mdsNumber"
	RouteMdsEntries    = RouteFiles + "/mds-entries"
	RouteMdsEntryFiles = RouteMdsEntries + "/:mdsId"

	// companies
	RouteCompanies          = RouteApi + "/companies"
	RouteCompaniesHierarchy = RouteCompanies + "/hierarchy"
	RouteCompany            = RouteCompanies + "/:companyId"
	RouteCompanyFiles       = RouteCompany + "/files"
	RouteCompanyMdsEntries  = RouteCompany + "/mds-entries"

	// public
	RouteUploads = "/uploads/:filename"

	// ops
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
