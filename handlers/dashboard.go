package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"budgetmonitor/services"
)

// dashboardCacheKey is the cache key of the aggregated summary. Write paths
// invalidate the "dashboard:" prefix.
const dashboardCacheKey = "dashboard:summary"

// HandleDashboard returns the aggregated financial summary, served from the
// TTL cache when fresh.
// Route: GET /api/ext/dashboard
func HandleDashboard(app *pocketbase.PocketBase, cache *services.Cache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if cached, ok := cache.Get(dashboardCacheKey); ok {
			if summary, isSummary := cached.(*services.DashboardSummary); isSummary {
				return e.JSON(http.StatusOK, summary)
			}
		}

		summary, err := services.Summarize(app)
		if err != nil {
			log.Printf("dashboard: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to build summary")
		}
		cache.Set(dashboardCacheKey, summary)

		return e.JSON(http.StatusOK, summary)
	}
}
