package handler

import (
	"net/http"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot"
	"github.com/Mwenda-Eric/bvaccess-api/internal/api/handler/router"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/authenticating"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/dashboarding"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/exporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/managing"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/reporting"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/vouchering"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.SuperAdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.SuperAdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.SuperAdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/summary",
			Method:      http.MethodGet,
			Handler:     GetDashboardSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/charts/revenue",
			Method:      http.MethodGet,
			Handler:     GetRevenueChart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/charts/sales-by-location",
			Method:      http.MethodGet,
			Handler:     GetSalesByLocationChart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/charts/sales-by-duration",
			Method:      http.MethodGet,
			Handler:     GetSalesByDurationChart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/charts/payment-methods",
			Method:      http.MethodGet,
			Handler:     GetPaymentMethodsChart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/charts/hourly-heatmap",
			Method:      http.MethodGet,
			Handler:     GetHourlyHeatmap(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/top-operators",
			Method:      http.MethodGet,
			Handler:     GetTopOperators(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/recent-vouchers",
			Method:      http.MethodGet,
			Handler:     GetRecentVouchers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/active-operators",
			Method:      http.MethodGet,
			Handler:     GetActiveOperators(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter, exporter exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/daily",
			Method:      http.MethodGet,
			Handler:     GetDailyReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/daily/export",
			Method:      http.MethodGet,
			Handler:     ExportDailyReport(service, exporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/period",
			Method:      http.MethodGet,
			Handler:     GetPeriodReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/period/export",
			Method:      http.MethodGet,
			Handler:     ExportPeriodReport(service, exporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Vouchers(service vouchering.Voucherer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/vouchers",
			Method:      http.MethodGet,
			Handler:     ListVouchers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/vouchers/summary",
			Method:      http.MethodGet,
			Handler:     GetVoucherSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/vouchers",
			Method:      http.MethodPost,
			Handler:     CreateVoucher(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/vouchers/:id",
			Method:      http.MethodGet,
			Handler:     GetVoucher(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/vouchers/:id/void",
			Method:      http.MethodPost,
			Handler:     VoidVoucher(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Management(service managing.Manager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/locations",
			Method:      http.MethodGet,
			Handler:     ListLocations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/locations",
			Method:      http.MethodPost,
			Handler:     CreateLocation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/locations/:id",
			Method:      http.MethodPut,
			Handler:     UpdateLocation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/operators",
			Method:      http.MethodGet,
			Handler:     ListOperators(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/operators",
			Method:      http.MethodPost,
			Handler:     CreateOperator(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/operators/:id",
			Method:      http.MethodPut,
			Handler:     UpdateOperator(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Hotspot(service hotspot.HotspotIntegrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/hotspot/status",
			Method:      http.MethodGet,
			Handler:     GetHotspotStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.SuperAdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.SuperAdminOnly()},
		},
	}
}
