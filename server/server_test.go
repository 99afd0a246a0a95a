package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardcertto/n2-bot/auth"
	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/cpe"
	"github.com/richardcertto/n2-bot/inventory"
	"github.com/richardcertto/n2-bot/isp"
	"github.com/richardcertto/n2-bot/oncall"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/resolver"
	"github.com/richardcertto/n2-bot/worker"
)

func newTestServer(t *testing.T, upstream http.Handler) *Server {
	t.Helper()
	backend := httptest.NewServer(upstream)
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		HTTP:      config.HTTPConfig{TimeoutSeconds: 5, Retries: 1, RetryDelaySeconds: 0},
		Inventory: config.InventoryConfig{BaseURL: backend.URL, Token: "t", BoxTimeoutSeconds: 5},
		CPE:       config.CPEConfig{BaseURL: backend.URL},
		ISP:       config.ISPConfig{BaseURL: backend.URL},
		OnCall:    config.OnCallConfig{BaseURL: backend.URL},
	}

	hc := httpclient.New(cfg.HTTP)
	inv := inventory.NewService(cfg.Inventory, hc)
	authSvc, err := auth.NewService(cfg.AuthDB)
	require.NoError(t, err)

	w := worker.New(cfg, inv, resolver.NewEngine(inv),
		cpe.NewService(cfg.CPE, hc),
		isp.NewService(cfg.ISP, hc),
		oncall.NewService(cfg.OnCall),
		authSvc)
	return New(w)
}

func TestMissingOperatorHeader(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oncall", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidOperatorHeader(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux())

	req := httptest.NewRequest(http.MethodGet, "/api/oncall", nil)
	req.Header.Set("X-Operator-Id", "not-a-number")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCTODispatchesBoxName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/searchbox", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POA_A001_CTO1", r.URL.Query().Get("box_name"))
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{
			map[string]interface{}{"box_id": 77},
		}})
	})
	mux.HandleFunc("/getbox", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status_code": 200, "result": map[string]interface{}{
			"box_id":        77,
			"box_full_name": "POA_A001_CTO1",
			"points": []interface{}{
				map[string]interface{}{"point_name": "Saída 1", "status_name": "disponível"},
			},
		}})
	})
	srv := newTestServer(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/cto?q=POA_A001_CTO1", nil)
	req.Header.Set("X-Operator-Id", "42")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "POA_A001_CTO1")
	assert.Contains(t, body.Message, "Disponível: 1")
}

func TestCTODispatchesClientID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/searchreservations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	})
	mux.HandleFunc("/searchclient", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123", r.URL.Query().Get("cod_cli"))
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	})
	srv := newTestServer(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/cto?q=123", nil)
	req.Header.Set("X-Operator-Id", "42")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Message      string `json:"message"`
		DetailsBoxID string `json:"details_box_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "Nenhuma conexão ativa ou reserva válida")
	assert.Empty(t, body.DetailsBoxID)
}

func TestClientRequiresParameter(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux())

	req := httptest.NewRequest(http.MethodGet, "/api/client", nil)
	req.Header.Set("X-Operator-Id", "42")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
