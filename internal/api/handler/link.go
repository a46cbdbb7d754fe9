package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/scraper"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
)

// writeMonitoringError traduz os erros do usecase de monitoramento para a
// resposta padronizada da API
func writeMonitoringError(w http.ResponseWriter, err error) {
	var monErr *monitoring.MonitoringError
	if errors.As(err, &monErr) {
		apiErrors.WriteError(w, monErr.Code, monErr.Error(), nil)
		return
	}

	if errors.Is(err, scraper.ErrExtractionFailed) {
		apiErrors.WriteError(w, apiErrors.ErrExtractionFailed, "Não foi possível ler a página do anúncio", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}

func AddLink(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req monitoring.AddLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		link, err := service.AddLink(r.Context(), claims.TenantID(), req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao cadastrar link")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(link); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ImportSearch(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req monitoring.ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		result, err := service.ImportSearchPage(r.Context(), claims.TenantID(), req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao importar página de busca")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ListLinks(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var store *domain.StoreName
		if raw := r.URL.Query().Get("store"); raw != "" {
			value := domain.StoreName(raw)
			if !value.Valid() {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, fmt.Sprintf("Loja %q não suportada", raw), nil)
				return
			}
			store = &value
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

		result, err := service.List(claims.TenantID(), store, page, perPage)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar links")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func UpdateLinkAnnotations(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req monitoring.UpdateAnnotationsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if req.Store == "" {
			req.Store = domain.StoreMercadoLivre
		}

		link, err := service.UpdateAnnotations(claims.TenantID(), req)
		if err != nil {
			logrus.WithError(err).Error("Erro ao atualizar anotações do link")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(link); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func RemoveLinkTag(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		query := r.URL.Query()
		sku := query.Get("sku")
		tag := query.Get("tag")

		store := domain.StoreName(query.Get("store"))
		if store == "" {
			store = domain.StoreMercadoLivre
		}

		link, err := service.RemoveTag(claims.TenantID(), sku, store, tag)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover tag do link")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(link); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ListLinkTags(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		tags, err := service.UniqueTags(claims.TenantID())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar tags")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(map[string][]string{"tags": tags}); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func DeleteLink(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		sku := httprouter.ParamsFromContext(r.Context()).ByName("sku")

		deleted, err := service.Delete(claims.TenantID(), sku)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover link")
			writeMonitoringError(w, err)
			return
		}

		if deleted == 0 {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Link não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted}); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func DeleteStoreLinks(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		store := domain.StoreName(httprouter.ParamsFromContext(r.Context()).ByName("store"))

		deleted, err := service.DeleteStore(claims.TenantID(), store)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover links da loja")
			writeMonitoringError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted}); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ClearLinkRates(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		store := domain.StoreName(httprouter.ParamsFromContext(r.Context()).ByName("store"))

		if err := service.ClearRates(claims.TenantID(), store); err != nil {
			logrus.WithError(err).Error("Erro ao reiniciar base de comparação")
			writeMonitoringError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// RefreshStoreStream revisita os links da loja transmitindo o progresso por
// Server-Sent Events: um evento por item atualizado com o percentual, e um
// evento final com os alertas de preço.
func RefreshStoreStream(service monitoring.LinkMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado", nil)
			return
		}

		store := domain.StoreName(httprouter.ParamsFromContext(r.Context()).ByName("store"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		writeEvent := func(name string, payload any) {
			data, err := json.Marshal(payload)
			if err != nil {
				logrus.WithError(err).Error("Erro ao serializar evento de progresso")
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
			flusher.Flush()
		}

		alerts, err := service.RefreshStore(r.Context(), claims.TenantID(), store, func(ev monitoring.ProgressEvent) {
			writeEvent("progress", ev)
		})
		if err != nil {
			writeEvent("error", map[string]string{"message": err.Error()})
			return
		}

		writeEvent("done", map[string]any{"alerts": alerts})
	})
}
