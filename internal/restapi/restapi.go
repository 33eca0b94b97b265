// Package restapi exposes the HTTP surface of the ordering system:
// authentication, the customer-facing catalog and cart, and the
// back-office CRUD and reporting endpoints.
package restapi

// InitRouter registers all API routes. Call after webserver.Init.
func InitRouter() {
	registerAuthRoutes()
	registerCatalogRoutes()
	registerCartRoutes()
	registerCategoryRoutes()
	registerMenuItemRoutes()
	registerTableRoutes()
	registerOrderRoutes()
	registerUserRoutes()
	registerDashboardRoutes()
}
