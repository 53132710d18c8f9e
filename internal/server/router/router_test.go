package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	inventorysvc "github.com/mamadbah2/stockroom/internal/service/inventory"
	issuancesvc "github.com/mamadbah2/stockroom/internal/service/issuance"
	reportingsvc "github.com/mamadbah2/stockroom/internal/service/reporting"
)

func newTestServer(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	store := memory.New()
	inventorySvc := inventorysvc.NewService(store, models.ModeCatalog, models.DefaultLowStockThreshold, nil)
	issuanceSvc := issuancesvc.NewService(store, inventorySvc, nil, models.ModeCatalog, nil)
	reportingSvc := reportingsvc.NewService(store, models.DefaultLowStockThreshold, nil)

	engine := New(
		handlers.NewInventoryHandler(inventorySvc, nil),
		handlers.NewIssuanceHandler(issuanceSvc, nil),
		handlers.NewReportHandler(reportingSvc),
		nil,
	)
	return engine, store
}

func do(engine *gin.Engine, method, path, role, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(RoleHeader, role)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestServer(t)
	w := do(engine, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", w.Code)
	}
}

func TestMutationRequiresStorekeeperRole(t *testing.T) {
	engine, store := newTestServer(t)

	w := do(engine, http.MethodPost, "/api/items", "supervisor", `{"name":"Shirt","quantity":5}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("supervisor AddItem status = %d, want 403", w.Code)
	}
	w = do(engine, http.MethodPost, "/api/items", "", `{"name":"Shirt","quantity":5}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("roleless AddItem status = %d, want 403", w.Code)
	}

	items, _ := store.ListItems(context.Background())
	if len(items) != 0 {
		t.Fatalf("rejected requests created %d items", len(items))
	}

	w = do(engine, http.MethodPost, "/api/items", "storekeeper", `{"name":"Shirt","quantity":5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("storekeeper AddItem status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestIssueEndpointErrorMapping(t *testing.T) {
	engine, store := newTestServer(t)

	w := do(engine, http.MethodPost, "/api/items", "storekeeper", `{"name":"Tie","quantity":4}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("AddItem status = %d", w.Code)
	}
	items, _ := store.ListItems(context.Background())
	itemID := items[0].ID

	w = do(engine, http.MethodPost, "/api/items/"+itemID+"/issue", "storekeeper", `{"student_name":"Jane","quantity":10}`)
	if w.Code != http.StatusConflict {
		t.Errorf("over-issue status = %d, want 409: %s", w.Code, w.Body.String())
	}

	w = do(engine, http.MethodPost, "/api/items/"+itemID+"/issue", "storekeeper", `{"quantity":1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing student status = %d, want 400", w.Code)
	}

	w = do(engine, http.MethodPost, "/api/items/missing/issue", "storekeeper", `{"student_name":"Jane","quantity":1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown item status = %d, want 400", w.Code)
	}

	w = do(engine, http.MethodPost, "/api/items/"+itemID+"/issue", "storekeeper", `{"student_name":"Jane","quantity":2,"issue_date":"2024-01-01"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("valid issue status = %d, want 201: %s", w.Code, w.Body.String())
	}
}
