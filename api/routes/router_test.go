package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/sellerdesk-backend/internal/orders"
	"github.com/sellerdesk/sellerdesk-backend/pkg/config"
	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
	"github.com/sellerdesk/sellerdesk-backend/pkg/logger"
	"github.com/sellerdesk/sellerdesk-backend/pkg/metrics"
)

func newTestRouter(t *testing.T) (http.Handler, *orders.Store) {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
	}
	logg := logger.New(logger.Options{
		ServiceName: "router-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
	store, err := orders.NewStore(nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	registry := prometheus.NewRegistry()
	return NewRouter(cfg, logg, store, metrics.NewOrderMetrics(registry), registry), store
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestOrderLifecycleThroughRouter(t *testing.T) {
	router, _ := newTestRouter(t)

	createBody := `{
		"items": [{"name": "Wheat Flour 5kg", "quantity": 1, "unit_price": "240"}],
		"customer": {"name": "Divya Rao", "phone": "+91 98111 22334", "address": "3 Hill Road, Nashik"}
	}`
	createResp := httptest.NewRecorder()
	router.ServeHTTP(createResp, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(createBody)))
	if createResp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d: %s", createResp.Code, createResp.Body.String())
	}

	var created struct {
		Data orders.Order `json:"data"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	orderID := created.Data.ID.String()

	acceptResp := httptest.NewRecorder()
	router.ServeHTTP(acceptResp, httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/"+orderID+"/transition", strings.NewReader(`{"status": "accepted"}`)))
	if acceptResp.Code != http.StatusOK {
		t.Fatalf("accept: expected 200 got %d: %s", acceptResp.Code, acceptResp.Body.String())
	}

	detailResp := httptest.NewRecorder()
	router.ServeHTTP(detailResp, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID, nil))
	if detailResp.Code != http.StatusOK {
		t.Fatalf("detail: expected 200 got %d", detailResp.Code)
	}
	var detail struct {
		Data orders.Order `json:"data"`
	}
	if err := json.NewDecoder(detailResp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Data.Status != enums.OrderStatusAccepted {
		t.Fatalf("expected accepted got %s", detail.Data.Status)
	}

	actionsResp := httptest.NewRecorder()
	router.ServeHTTP(actionsResp, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID+"/actions", nil))
	if actionsResp.Code != http.StatusOK {
		t.Fatalf("actions: expected 200 got %d", actionsResp.Code)
	}
}

func TestAggregateRoutesNotShadowedByOrderID(t *testing.T) {
	router, store := newTestRouter(t)

	if _, err := store.Create(context.Background(), orders.CreateInput{
		Items:    []orders.CreateItemInput{{Name: "Ghee 1kg", Quantity: 1, UnitPrice: decimal.NewFromInt(560)}},
		Customer: orders.Customer{Name: "Kiran", Phone: "+91 90909 80807", Address: "Camp, Pune"},
	}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	for _, path := range []string{
		"/api/v1/orders/pending",
		"/api/v1/orders/active-deliveries",
		"/api/v1/orders/today",
		"/api/v1/orders/stats",
		"/api/v1/orders/revenue",
	} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestUnknownOrderReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet,
		"/api/v1/orders/0b46a0d1-6f3c-4f77-9d5c-5a8f2f8f69aa", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
