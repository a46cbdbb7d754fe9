package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/expedicao"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
	"github.com/lrodrigues/costura-backoffice-api/pkg/utils"
)

// writeExpedicaoError traduz os erros do usecase de expedição. Conflitos
// carregam o registro existente em details para o operador ver o que já
// foi bipado ou quem encerrou o dia.
func writeExpedicaoError(w http.ResponseWriter, err error) {
	var dupErr *expedicao.DuplicateError
	if errors.As(err, &dupErr) {
		apiErrors.WriteError(w, apiErrors.ErrDuplicateRecord, dupErr.Error(), dupErr.Existing)
		return
	}

	var closedErr *expedicao.AlreadyClosedError
	if errors.As(err, &closedErr) {
		apiErrors.WriteError(w, apiErrors.ErrDayAlreadyClosed, closedErr.Error(), closedErr.Existing)
		return
	}

	var expErr *expedicao.ExpedicaoError
	if errors.As(err, &expErr) {
		apiErrors.WriteError(w, expErr.Code, expErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}

// parseDataQuery lê o parâmetro opcional ?data=YYYY-MM-DD
func parseDataQuery(r *http.Request) (*time.Time, error) {
	raw := r.URL.Query().Get("data")
	if raw == "" {
		return nil, nil
	}

	return utils.ParseDate(raw)
}

func VerificarExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orderID := httprouter.ParamsFromContext(r.Context()).ByName("orderId")

		registro, err := service.Verificar(orderID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao verificar código de barras")
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		response := map[string]any{"jaRegistrado": registro != nil}
		if registro != nil {
			response["registro"] = registro
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func RegistrarExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req expedicao.RegistrarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		registro, err := service.Registrar(req)
		if err != nil {
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(registro); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func EncerrarDiaExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var body struct {
			Data string `json:"data"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
				return
			}
		}

		var data *time.Time
		if body.Data != "" {
			parsed, err := utils.ParseDate(body.Data)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
				return
			}
			data = parsed
		}

		encerrado, err := service.EncerrarDia(data, claims.UserID)
		if err != nil {
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(encerrado); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func DiaEncerradoExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := parseDataQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		dia, err := service.ObterDiaEncerrado(data)
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar encerramento do dia")
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		response := map[string]any{"encerrado": dia != nil}
		if dia != nil {
			response["dia"] = dia
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ObterMetaExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := parseDataQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		meta, err := service.ObterMeta(data)
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar meta de expedição")
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(meta); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ConfigurarMetaExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req expedicao.ConfigurarMetaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		data, err := parseDataQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}
		req.Data = data

		meta, err := service.ConfigurarMeta(req)
		if err != nil {
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(meta); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

func ProdutividadeExpedicao(service expedicao.ExpedicaoService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := parseDataQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		produtividade, err := service.Produtividade(data)
		if err != nil {
			logrus.WithError(err).Error("Erro ao calcular produtividade")
			writeExpedicaoError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(produtividade); err != nil {
			logrus.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}
