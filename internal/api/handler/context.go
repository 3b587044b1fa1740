package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/api/middleware"
	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// Auditor accepts audit events without blocking the request.
type Auditor interface {
	Enqueue(event domain.AuditEvent) bool
}

// actor names the signed-in account, or "anonymous" when the route is not
// behind a session check.
func actor(c echo.Context) string {
	if s, ok := middleware.SessionFrom(c); ok && s.Name != "" {
		return s.Name
	}
	return "anonymous"
}

// audit records the outcome of a mutation. A nil auditor is a no-op.
func audit(c echo.Context, a Auditor, ev domain.AuditEvent, gerr *domain.GatewayError) {
	if a == nil {
		return
	}
	ev.Actor = actor(c)
	ev.OccurredAt = time.Now().UTC()
	ev.Outcome = domain.OutcomeSuccess
	ev.Status = c.Response().Status
	if gerr != nil {
		ev.Outcome = domain.OutcomeFailure
		ev.Status = gerr.Status
	}
	a.Enqueue(ev)
}
