package handler

import (
	"net/http"

	"github.com/lrodrigues/costura-backoffice-api/internal/api/handler/router"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/costura"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/expedicao"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
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

func Links(service monitoring.LinkMonitor) []router.Route {
	ownerOnly := []func(http.Handler) http.Handler{middleware.OwnerOnly()}

	return []router.Route{
		{
			Path:        "/v1/links",
			Method:      http.MethodPost,
			Handler:     AddLink(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/import",
			Method:      http.MethodPost,
			Handler:     ImportSearch(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links",
			Method:      http.MethodGet,
			Handler:     ListLinks(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/tags",
			Method:      http.MethodGet,
			Handler:     ListLinkTags(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/tags",
			Method:      http.MethodDelete,
			Handler:     RemoveLinkTag(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/annotations",
			Method:      http.MethodPut,
			Handler:     UpdateLinkAnnotations(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/sku/:sku",
			Method:      http.MethodDelete,
			Handler:     DeleteLink(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/store/:store",
			Method:      http.MethodDelete,
			Handler:     DeleteStoreLinks(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/store/:store/refresh",
			Method:      http.MethodGet,
			Handler:     RefreshStoreStream(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/links/store/:store/rates/clear",
			Method:      http.MethodPost,
			Handler:     ClearLinkRates(service),
			Middlewares: ownerOnly,
		},
	}
}

func Expedicao(service expedicao.ExpedicaoService) []router.Route {
	operadores := []func(http.Handler) http.Handler{middleware.OwnerOrOperador()}

	return []router.Route{
		{
			Path:        "/v1/expedicao/verificar/:orderId",
			Method:      http.MethodGet,
			Handler:     VerificarExpedicao(service),
			Middlewares: operadores,
		},
		{
			Path:        "/v1/expedicao/registros",
			Method:      http.MethodPost,
			Handler:     RegistrarExpedicao(service),
			Middlewares: operadores,
		},
		{
			Path:        "/v1/expedicao/encerrar-dia",
			Method:      http.MethodPost,
			Handler:     EncerrarDiaExpedicao(service),
			Middlewares: operadores,
		},
		{
			Path:        "/v1/expedicao/dia-encerrado",
			Method:      http.MethodGet,
			Handler:     DiaEncerradoExpedicao(service),
			Middlewares: operadores,
		},
		{
			Path:        "/v1/expedicao/meta",
			Method:      http.MethodGet,
			Handler:     ObterMetaExpedicao(service),
			Middlewares: operadores,
		},
		{
			Path:        "/v1/expedicao/meta",
			Method:      http.MethodPut,
			Handler:     ConfigurarMetaExpedicao(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/expedicao/produtividade",
			Method:      http.MethodGet,
			Handler:     ProdutividadeExpedicao(service),
			Middlewares: operadores,
		},
	}
}

func Jobs(service costura.JobService) []router.Route {
	ownerOnly := []func(http.Handler) http.Handler{middleware.OwnerOnly()}
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{
			Path:        "/v1/jobs",
			Method:      http.MethodPost,
			Handler:     CreateJob(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/jobs",
			Method:      http.MethodGet,
			Handler:     ListJobs(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/job/:id",
			Method:      http.MethodGet,
			Handler:     GetJob(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/job/:id",
			Method:      http.MethodPut,
			Handler:     ToggleJobField(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/jobs/toggle-many",
			Method:      http.MethodPut,
			Handler:     ToggleManyJobs(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/jobs/sizes",
			Method:      http.MethodPut,
			Handler:     UpdateJobSizes(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/jobs/rate",
			Method:      http.MethodPut,
			Handler:     UpdateJobRate(service),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/jobs/rate/:id",
			Method:      http.MethodGet,
			Handler:     GetJobRate(service),
			Middlewares: allRoles,
		},
	}
}

func JobLogs(service costura.JobService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/logs",
			Method:      http.MethodGet,
			Handler:     ListJobChanges(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
	}
}

func Events(hub *sse.Hub) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/events",
			Method:  http.MethodGet,
			Handler: EventStream(hub),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	ownerOnly := []func(http.Handler) http.Handler{middleware.OwnerOnly()}

	return []router.Route{
		{
			Path:        "/v1/cron/links/run",
			Method:      http.MethodPost,
			Handler:     TriggerLinkRefresh(services),
			Middlewares: ownerOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     CronStatus(services),
			Middlewares: ownerOnly,
		},
	}
}
