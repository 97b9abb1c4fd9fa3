package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type listResponse struct {
	Status string `json:"status"`
	Data   struct {
		Signals []map[string]interface{} `json:"signals"`
		Total   int                      `json:"total"`
	} `json:"data"`
}

func getSignals(e *echo.Echo, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/signals"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListEmptyStore(t *testing.T) {
	e, _ := newTestGateway(t, testSecret)

	rec := getSignals(e, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on empty store, got %d", rec.Code)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Total != 0 {
		t.Fatalf("expected total 0, got %d", resp.Data.Total)
	}
	if resp.Data.Signals == nil || len(resp.Data.Signals) != 0 {
		t.Fatalf("expected empty signals list, got %v", resp.Data.Signals)
	}
}

func TestListLimitAndOrder(t *testing.T) {
	e, _ := newTestGateway(t, testSecret)
	token := validToken(t)

	for i := 0; i < 5; i++ {
		rec := submit(e, token, fmt.Sprintf(`{"asset":"ASSET-%d","direction":"BUY"}`, i))
		if rec.Code != http.StatusOK {
			t.Fatalf("submission %d failed: %d", i, rec.Code)
		}
	}

	rec := getSignals(e, "?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Total != 5 {
		t.Fatalf("expected total 5, got %d", resp.Data.Total)
	}
	if len(resp.Data.Signals) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(resp.Data.Signals))
	}
	for i, want := range []string{"ASSET-2", "ASSET-3", "ASSET-4"} {
		if got := resp.Data.Signals[i]["asset"]; got != want {
			t.Fatalf("signal %d: expected %s, got %v", i, want, got)
		}
	}
	if resp.Data.Signals[0]["received_at"] == nil {
		t.Fatalf("stored signal missing received_at")
	}
}

func TestListInvalidLimit(t *testing.T) {
	e, _ := newTestGateway(t, testSecret)

	for _, query := range []string{"?limit=abc", "?limit=0", "?limit=-3"} {
		rec := getSignals(e, query)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestListLimitCapped(t *testing.T) {
	e, _ := newTestGateway(t, testSecret)

	// Cap is 100 in the test gateway; an absurd limit must not error
	rec := getSignals(e, "?limit=100000")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for over-cap limit, got %d", rec.Code)
	}
}
