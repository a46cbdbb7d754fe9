package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/costura"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/expedicao"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
)

func withClaims(r *http.Request, claims *domain.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, claims)
	return r.WithContext(ctx)
}

func withParams(r *http.Request, params httprouter.Params) *http.Request {
	ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
	return r.WithContext(ctx)
}

func ownerClaims() *domain.Claims {
	return &domain.Claims{UserID: "owner-1", Role: domain.RoleOwner}
}

func decodeAPIError(t *testing.T, body *strings.Reader) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

// monitorStub implementa monitoring.LinkMonitor delegando para funções
// opcionais; métodos não configurados não devem ser chamados pelo teste
type monitorStub struct {
	addLink func(ctx context.Context, tenantID string, req monitoring.AddLinkRequest) (*domain.MonitoredLink, error)
	list    func(tenantID string, store *domain.StoreName, page, perPage int) (*monitoring.ListResult, error)
}

func (m *monitorStub) AddLink(ctx context.Context, tenantID string, req monitoring.AddLinkRequest) (*domain.MonitoredLink, error) {
	return m.addLink(ctx, tenantID, req)
}

func (m *monitorStub) ImportSearchPage(context.Context, string, monitoring.ImportRequest) (*monitoring.ImportResult, error) {
	panic("não esperado")
}

func (m *monitorStub) RefreshStore(context.Context, string, domain.StoreName, func(monitoring.ProgressEvent)) ([]domain.PriceAlert, error) {
	panic("não esperado")
}

func (m *monitorStub) RefreshTenant(context.Context, string) ([]domain.PriceAlert, error) {
	panic("não esperado")
}

func (m *monitorStub) UpdateAnnotations(string, monitoring.UpdateAnnotationsRequest) (*domain.MonitoredLink, error) {
	panic("não esperado")
}

func (m *monitorStub) RemoveTag(string, string, domain.StoreName, string) (*domain.MonitoredLink, error) {
	panic("não esperado")
}

func (m *monitorStub) UniqueTags(string) ([]string, error) { panic("não esperado") }

func (m *monitorStub) List(tenantID string, store *domain.StoreName, page, perPage int) (*monitoring.ListResult, error) {
	return m.list(tenantID, store, page, perPage)
}

func (m *monitorStub) Delete(string, string) (int64, error)               { panic("não esperado") }
func (m *monitorStub) DeleteStore(string, domain.StoreName) (int64, error) { panic("não esperado") }
func (m *monitorStub) ClearRates(string, domain.StoreName) error           { panic("não esperado") }

type expedicaoStub struct {
	verificar   func(orderID string) (*domain.ExpedicaoRegistro, error)
	registrar   func(req expedicao.RegistrarRequest) (*domain.ExpedicaoRegistro, error)
	encerrarDia func(data *time.Time, encerradoPor string) (*domain.ExpedicaoDiaEncerrado, error)
}

func (s *expedicaoStub) Verificar(orderID string) (*domain.ExpedicaoRegistro, error) {
	return s.verificar(orderID)
}

func (s *expedicaoStub) Registrar(req expedicao.RegistrarRequest) (*domain.ExpedicaoRegistro, error) {
	return s.registrar(req)
}

func (s *expedicaoStub) EncerrarDia(data *time.Time, encerradoPor string) (*domain.ExpedicaoDiaEncerrado, error) {
	return s.encerrarDia(data, encerradoPor)
}

func (s *expedicaoStub) ObterDiaEncerrado(*time.Time) (*domain.ExpedicaoDiaEncerrado, error) {
	panic("não esperado")
}

func (s *expedicaoStub) ObterMeta(*time.Time) (*domain.ExpedicaoMeta, error) { panic("não esperado") }

func (s *expedicaoStub) ConfigurarMeta(expedicao.ConfigurarMetaRequest) (*domain.ExpedicaoMeta, error) {
	panic("não esperado")
}

func (s *expedicaoStub) Produtividade(*time.Time) (*domain.Produtividade, error) {
	panic("não esperado")
}

type jobStub struct {
	toggleField func(actor costura.Actor, req costura.ToggleRequest) (*domain.Job, error)
	listJobs    func(actor costura.Actor, req costura.ListJobsRequest) ([]*domain.Job, error)
}

func (s *jobStub) CreateJob(costura.Actor, costura.CreateJobRequest) (*domain.Job, error) {
	panic("não esperado")
}

func (s *jobStub) GetJob(costura.Actor, string) (*domain.Job, error) { panic("não esperado") }

func (s *jobStub) ToggleField(actor costura.Actor, req costura.ToggleRequest) (*domain.Job, error) {
	return s.toggleField(actor, req)
}

func (s *jobStub) ToggleMany(costura.Actor, costura.ToggleManyRequest) ([]*domain.Job, error) {
	panic("não esperado")
}

func (s *jobStub) UpdateSizes(costura.Actor, costura.UpdateSizesRequest) (*domain.Job, error) {
	panic("não esperado")
}

func (s *jobStub) UpdateRate(costura.Actor, string, int) (*domain.Job, error) {
	panic("não esperado")
}

func (s *jobStub) ListJobs(actor costura.Actor, req costura.ListJobsRequest) ([]*domain.Job, error) {
	return s.listJobs(actor, req)
}

func (s *jobStub) ListChanges(costura.Actor, costura.ListChangesRequest) ([]*domain.JobChange, error) {
	panic("não esperado")
}

func TestHealthcheckHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()

	HealthcheckHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAddLinkSemAutenticacao(t *testing.T) {
	handler := AddLink(&monitorStub{})

	req := httptest.NewRequest(http.MethodPost, "/v1/links", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	apiErr := decodeAPIError(t, strings.NewReader(rec.Body.String()))
	assert.Equal(t, apiErrors.ErrInvalidToken, apiErr.Code)
}

func TestAddLinkCriado(t *testing.T) {
	var gotTenant string

	handler := AddLink(&monitorStub{
		addLink: func(_ context.Context, tenantID string, req monitoring.AddLinkRequest) (*domain.MonitoredLink, error) {
			gotTenant = tenantID
			return &domain.MonitoredLink{SKU: req.SKU, TenantID: tenantID}, nil
		},
	})

	body := `{"sku":"CAMA-01","link":"https://produto.mercadolivre.com.br/MLB-123","myPrice":99.9}`
	req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/links", strings.NewReader(body)), ownerClaims())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "owner-1", gotTenant)

	var link domain.MonitoredLink
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	assert.Equal(t, "CAMA-01", link.SKU)
}

func TestListLinksLojaInvalida(t *testing.T) {
	handler := ListLinks(&monitorStub{})

	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/links?store=aliexpress", nil), ownerClaims())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decodeAPIError(t, strings.NewReader(rec.Body.String()))
	assert.Equal(t, apiErrors.ErrInvalidRequest, apiErr.Code)
}

func TestRegistrarExpedicaoCriado(t *testing.T) {
	handler := RegistrarExpedicao(&expedicaoStub{
		registrar: func(req expedicao.RegistrarRequest) (*domain.ExpedicaoRegistro, error) {
			return &domain.ExpedicaoRegistro{ID: "reg-1", OrderID: req.OrderID, MesaID: req.MesaID}, nil
		},
	})

	body := `{"orderId":"44812345","mesaId":"M2"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/expedicao/registros", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var registro domain.ExpedicaoRegistro
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registro))
	assert.Equal(t, "44812345", registro.OrderID)
	assert.Equal(t, domain.MesaM2, registro.MesaID)
}

func TestRegistrarExpedicaoDuplicado(t *testing.T) {
	existing := &domain.ExpedicaoRegistro{ID: "reg-1", OrderID: "44812345", MesaID: domain.MesaM1}

	handler := RegistrarExpedicao(&expedicaoStub{
		registrar: func(expedicao.RegistrarRequest) (*domain.ExpedicaoRegistro, error) {
			return nil, &expedicao.DuplicateError{Existing: existing}
		},
	})

	body := `{"orderId":"44812345","mesaId":"M2"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/expedicao/registros", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var apiErr struct {
		Code    string                    `json:"code"`
		Details *domain.ExpedicaoRegistro `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, apiErrors.ErrDuplicateRecord, apiErr.Code)
	require.NotNil(t, apiErr.Details)
	assert.Equal(t, "44812345", apiErr.Details.OrderID)
	assert.Equal(t, domain.MesaM1, apiErr.Details.MesaID)
}

func TestEncerrarDiaJaEncerrado(t *testing.T) {
	encerrado := &domain.ExpedicaoDiaEncerrado{ID: "enc-1", EncerradoPor: "owner-1", TotalPacotes: 42}

	handler := EncerrarDiaExpedicao(&expedicaoStub{
		encerrarDia: func(*time.Time, string) (*domain.ExpedicaoDiaEncerrado, error) {
			return nil, &expedicao.AlreadyClosedError{Existing: encerrado}
		},
	})

	req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/expedicao/encerrar-dia", strings.NewReader(`{}`)), ownerClaims())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var apiErr struct {
		Code    string                        `json:"code"`
		Details *domain.ExpedicaoDiaEncerrado `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, apiErrors.ErrDayAlreadyClosed, apiErr.Code)
	require.NotNil(t, apiErr.Details)
	assert.Equal(t, 42, apiErr.Details.TotalPacotes)
}

func TestVerificarExpedicaoNaoRegistrado(t *testing.T) {
	handler := VerificarExpedicao(&expedicaoStub{
		verificar: func(string) (*domain.ExpedicaoRegistro, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/expedicao/verificar/999", nil)
	req = withParams(req, httprouter.Params{{Key: "orderId", Value: "999"}})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["jaRegistrado"])
}

func TestToggleJobFieldUsaIDDaRota(t *testing.T) {
	var gotReq costura.ToggleRequest

	handler := ToggleJobField(&jobStub{
		toggleField: func(_ costura.Actor, req costura.ToggleRequest) (*domain.Job, error) {
			gotReq = req
			return &domain.Job{ID: req.ID, Pago: req.Value}, nil
		},
	})

	body := `{"field":"pago","value":true}`
	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/job/job-7", strings.NewReader(body)), ownerClaims())
	req = withParams(req, httprouter.Params{{Key: "id", Value: "job-7"}})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "job-7", gotReq.ID)
	assert.Equal(t, "pago", gotReq.Field)
	assert.True(t, gotReq.Value)
}

func TestListJobsFaccionistaEnxergaApenasOsSeus(t *testing.T) {
	var gotReq costura.ListJobsRequest
	var gotActor costura.Actor

	handler := ListJobs(&jobStub{
		listJobs: func(actor costura.Actor, req costura.ListJobsRequest) ([]*domain.Job, error) {
			gotActor = actor
			gotReq = req
			return []*domain.Job{}, nil
		},
	})

	claims := &domain.Claims{UserID: "fac-3", OwnerID: "owner-1", Role: domain.RoleFaccionista}
	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/jobs?faccionistaId=outro", nil), claims)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fac-3", gotReq.FaccionistaID)
	assert.Equal(t, "owner-1", gotActor.OwnerID)
}

// streamRecorder é um ResponseWriter com Flush seguro para leitura
// concorrente durante o teste do stream
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   strings.Builder
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (r *streamRecorder) Header() http.Header { return r.header }
func (r *streamRecorder) WriteHeader(int)     {}
func (r *streamRecorder) Flush()              {}

func (r *streamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

func (r *streamRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

func TestEventStreamEntregaEventos(t *testing.T) {
	hub := sse.NewHub()
	handler := EventStream(hub)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil).WithContext(ctx)
	rec := newStreamRecorder()

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(rec, req)
		close(done)
	}()

	// espera o handler assinar o hub antes de publicar
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(sse.Event{Name: "expedicao:update", Data: map[string]string{"orderId": "123"}})

	require.Eventually(t, func() bool {
		return strings.Contains(rec.String(), "event: expedicao:update")
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	body := rec.String()
	assert.Contains(t, body, ": connected")
	assert.Contains(t, body, `"orderId":"123"`)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}
