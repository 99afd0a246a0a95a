package cpe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/pkg/models"
)

func occupiedPoint(clientID, serviceID string) models.Point {
	return models.Point{
		StatusID:   8,
		StatusName: "em operação",
		Attributes: models.PointAttributes{
			ActiveClients: clientID,
			ServiceHSI:    models.Scalar(serviceID),
		},
	}
}

func TestAggregateIsolatesFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/acs/cpestatus/", func(w http.ResponseWriter, r *http.Request) {
		clientID := strings.TrimPrefix(r.URL.Path, "/acs/cpestatus/")
		switch clientID {
		case "111":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"Result": map[string]interface{}{
					"code": 200,
					"details": []interface{}{
						map[string]interface{}{
							"cid":    "9001",
							"cpeid":  "CERT48AB01",
							"Modelo": "ONT142NG",
							"Sinal":  "25",
							"Uptime": "90000",
							"Temp":   "10436",
							"state":  1,
						},
					},
				},
			})
		case "222":
			time.Sleep(1500 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		case "333":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"Result": map[string]interface{}{"code": 400},
			})
		default:
			t.Errorf("unexpected telemetry fetch for %q", clientID)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	hc := httpclient.New(config.HTTPConfig{TimeoutSeconds: 1, Retries: 1, RetryDelaySeconds: 0})
	svc := NewService(config.CPEConfig{BaseURL: server.URL, MaxConcurrentRequests: 2}, hc)

	points := []models.Point{
		occupiedPoint("111", "9001"),
		occupiedPoint("222", "9002"),
		occupiedPoint("333", "9003"),
		{StatusName: "disponível"},
	}

	status := svc.Aggregate(context.Background(), "77", points)
	require.Len(t, status, 3, "the free point must not produce a fetch")

	ok := status["111"]
	assert.Equal(t, RecordOK, ok.Kind)
	assert.Equal(t, "-26.02 dBm ⚠️", ok.Signal)
	assert.Equal(t, "1", ok.State)
	assert.Equal(t, "ONT142NG", ok.Model)
	assert.Equal(t, "CERT48AB01", ok.Serial)
	assert.Equal(t, "1d 1h 0m", ok.Uptime)
	assert.Equal(t, "40", ok.Temperature)

	assert.Equal(t, RecordQueryError, status["222"].Kind)
	assert.Equal(t, RecordCancelled, status["333"].Kind)
}

func TestAggregateNoMatchingDevice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/acs/cpestatus/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Result": map[string]interface{}{
				"code": 200,
				"details": []interface{}{
					map[string]interface{}{"cid": "other-service", "cpeid": "CERT48AB01"},
				},
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	hc := httpclient.New(config.HTTPConfig{TimeoutSeconds: 5, Retries: 1, RetryDelaySeconds: 0})
	svc := NewService(config.CPEConfig{BaseURL: server.URL}, hc)

	status := svc.Aggregate(context.Background(), "77", []models.Point{occupiedPoint("111", "9001")})
	require.Len(t, status, 1)
	assert.Equal(t, RecordNoData, status["111"].Kind)
}

func TestSelectDeviceRequiresHardwareMarker(t *testing.T) {
	details := []models.CPEDevice{
		{CID: "9001", CPEID: "CERTXX01"},
		{CID: "9001", CPEID: "CERT5aFF02"},
	}
	device, found := selectDevice(details, "9001")
	require.True(t, found)
	assert.Equal(t, "CERT5aFF02", device.CPEID)

	_, found = selectDevice(details, "9999")
	assert.False(t, found)
}
