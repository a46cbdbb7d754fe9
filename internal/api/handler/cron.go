package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/scheduler"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
)

// CronJobServices agrupa os serviços agendados expostos pela API
type CronJobServices struct {
	LinkRefresh *scheduler.LinkRefreshService
}

func TriggerLinkRefresh(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		logrus.WithField("tenant_id", claims.TenantID()).Info("Atualização de links disparada manualmente")

		services.LinkRefresh.TriggerManualSync(claims.TenantID())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)

		if err := json.NewEncoder(w).Encode(map[string]string{"status": "started"}); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func CronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(services.LinkRefresh.GetStatus()); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}
