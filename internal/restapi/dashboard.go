package restapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/reporting"
	"github.com/restokit/restopos/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard/metrics", getDashboard, webserver.AdminOnly)
}

func getDashboard(c echo.Context) error {
	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))

	svc := reporting.NewDashboardService(GetDB(c))
	return ok(c, svc.BuildOverview(c.Request().Context(), month, year))
}
