package handler

import (
	"net/http"

	"github.com/vfg2006/social-metrics-api/internal/api/handler/router"
	"github.com/vfg2006/social-metrics-api/internal/usecases/aggregating"
	"github.com/vfg2006/social-metrics-api/internal/usecases/analyzing"
	"github.com/vfg2006/social-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/social-metrics-api/internal/usecases/ingesting"
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
	}
}

func Imports(service ingesting.Ingester) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/imports",
			Method:  http.MethodPost,
			Handler: ImportExports(service),
		},
	}
}

func Periods(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/periods",
			Method:  http.MethodGet,
			Handler: GetAvailablePeriods(service),
		},
		{
			Path:    "/v1/periods/summary",
			Method:  http.MethodGet,
			Handler: GetPeriodSummary(service),
		},
		{
			Path:    "/v1/periods/compare",
			Method:  http.MethodGet,
			Handler: ComparePeriods(service),
		},
		{
			Path:    "/v1/periods/top-performers",
			Method:  http.MethodGet,
			Handler: GetTopPerformers(service),
		},
		{
			Path:    "/v1/periods/market-share",
			Method:  http.MethodGet,
			Handler: GetMarketShare(service),
		},
	}
}

func Accounts(aggregator aggregating.Aggregator, analyzer analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: AccountList(aggregator),
		},
		{
			Path:    "/v1/accounts/:id/summary",
			Method:  http.MethodGet,
			Handler: GetAccountSummary(aggregator),
		},
		{
			Path:    "/v1/accounts/:id/trend",
			Method:  http.MethodGet,
			Handler: GetAccountTrend(analyzer),
		},
		{
			Path:    "/v1/accounts/:id/extremes",
			Method:  http.MethodGet,
			Handler: GetAccountExtremes(analyzer),
		},
		{
			Path:    "/v1/accounts/:id/correlation",
			Method:  http.MethodGet,
			Handler: GetAccountCorrelation(analyzer),
		},
		{
			Path:    "/v1/accounts/:id/anomalies",
			Method:  http.MethodGet,
			Handler: GetAccountAnomalies(analyzer),
		},
	}
}

func Dataset(service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset/clear",
			Method:  http.MethodPost,
			Handler: ClearDataset(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
