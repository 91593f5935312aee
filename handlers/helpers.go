package handlers

import (
	"github.com/pocketbase/pocketbase/core"
)

// currentUserID returns the id of the authenticated user on the request, or
// "" when the route was reached without auth (e.g. in tests). The id is an
// opaque identity-provider value stamped onto created records.
func currentUserID(e *core.RequestEvent) string {
	if e.Auth != nil {
		return e.Auth.Id
	}
	return ""
}

// apiError writes a JSON error body with the given status.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}
