package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetmonitor/services"
	"budgetmonitor/testhelpers"
)

func TestHandleDashboard(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cache := services.NewCache(time.Minute)
	testhelpers.CreateTestTransaction(t, app, map[string]any{
		"amount": 10000.0,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ext/dashboard", nil)
	rec := httptest.NewRecorder()

	if err := HandleDashboard(app, cache)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary services.DashboardSummary
	decodeJSON(t, rec, &summary)
	if summary.Overall.Count != 1 {
		t.Errorf("overall count = %d, want 1", summary.Overall.Count)
	}
	if summary.Overall.Requested != 10000 {
		t.Errorf("overall requested = %v, want 10000", summary.Overall.Requested)
	}

	// The summary is now cached.
	if cache.Len() != 1 {
		t.Errorf("cache holds %d entries after the first call, want 1", cache.Len())
	}
}

func TestHandleDashboardServesCachedSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cache := services.NewCache(time.Minute)
	testhelpers.CreateTestTransaction(t, app, nil)

	// First call warms the cache.
	req := httptest.NewRequest(http.MethodGet, "/api/ext/dashboard", nil)
	rec := httptest.NewRecorder()
	if err := HandleDashboard(app, cache)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// A record added behind the cache's back is invisible until invalidation.
	testhelpers.CreateTestTransaction(t, app, map[string]any{"budget_code": "EXT-2025-0002"})

	rec = httptest.NewRecorder()
	if err := HandleDashboard(app, cache)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var summary services.DashboardSummary
	decodeJSON(t, rec, &summary)
	if summary.Overall.Count != 1 {
		t.Errorf("cached count = %d, want the stale 1", summary.Overall.Count)
	}

	// After invalidation the fresh data shows up.
	cache.InvalidatePrefix("dashboard:")
	rec = httptest.NewRecorder()
	if err := HandleDashboard(app, cache)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	decodeJSON(t, rec, &summary)
	if summary.Overall.Count != 2 {
		t.Errorf("refreshed count = %d, want 2", summary.Overall.Count)
	}
}
