package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/costura"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
	"github.com/lrodrigues/costura-backoffice-api/pkg/utils"
)

func writeCosturaError(w http.ResponseWriter, err error) {
	var cosErr *costura.CosturaError
	if errors.As(err, &cosErr) {
		apiErrors.WriteError(w, cosErr.Code, cosErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}

// actorFromClaims resolve quem opera e sob qual dono os lotes vivem. Para o
// dono os dois coincidem; para faccionistas e operadores o escopo é o dono
// que os cadastrou.
func actorFromClaims(claims *domain.Claims) costura.Actor {
	return costura.Actor{
		UserID:  claims.UserID,
		OwnerID: claims.TenantID(),
	}
}

func CreateJob(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var body struct {
			costura.CreateJobRequest
			Data string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		req := body.CreateJobRequest
		if body.Data != "" {
			parsed, err := utils.ParseDate(body.Data)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
				return
			}
			req.Data = parsed
		}

		job, err := service.CreateJob(actorFromClaims(claims), req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao criar lote")
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(job); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func GetJob(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		job, err := service.GetJob(actorFromClaims(claims), id)
		if err != nil {
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(job); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ListJobs(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		query := r.URL.Query()

		req := costura.ListJobsRequest{
			FaccionistaID:   query.Get("faccionistaId"),
			Lote:            query.Get("lote"),
			IncludeArchived: query.Get("includeArchived") == "true",
		}

		var err error
		if req.From, err = parseOptionalDate(query.Get("from")); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use o formato YYYY-MM-DD", nil)
			return
		}
		if req.To, err = parseOptionalDate(query.Get("to")); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		// faccionista só enxerga os próprios lotes
		if claims.Role == domain.RoleFaccionista {
			req.FaccionistaID = claims.UserID
		}

		jobs, err := service.ListJobs(actorFromClaims(claims), req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar lotes")
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(jobs); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ToggleJobField(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req costura.ToggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		req.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		job, err := service.ToggleField(actorFromClaims(claims), req)
		if err != nil {
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(job); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ToggleManyJobs(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req costura.ToggleManyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		jobs, err := service.ToggleMany(actorFromClaims(claims), req)
		if err != nil {
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(jobs); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func UpdateJobSizes(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req costura.UpdateSizesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		job, err := service.UpdateSizes(actorFromClaims(claims), req)
		if err != nil {
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(job); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func UpdateJobRate(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req struct {
			ID   string `json:"id"`
			Rate int    `json:"rate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		job, err := service.UpdateRate(actorFromClaims(claims), req.ID, req.Rate)
		if err != nil {
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(job); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func GetJobRate(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		job, err := service.GetJob(actorFromClaims(claims), id)
		if err != nil {
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(map[string]any{"id": job.ID, "rateLote": job.RateLote}); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ListJobChanges(service costura.JobService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		query := r.URL.Query()

		req := costura.ListChangesRequest{
			JobID: query.Get("jobId"),
			Lote:  query.Get("lote"),
		}

		if raw := query.Get("limit"); raw != "" {
			limit, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido", nil)
				return
			}
			req.Limit = limit
		}

		var err error
		if req.From, err = parseOptionalDate(query.Get("from")); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida, use o formato YYYY-MM-DD", nil)
			return
		}
		if req.To, err = parseOptionalDate(query.Get("to")); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		changes, err := service.ListChanges(actorFromClaims(claims), req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar alterações")
			writeCosturaError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(changes); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	return utils.ParseDate(raw)
}
