package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// EntryHistory returns the recorded mutations of one entry, newest first.
//
// @Summary      Entry audit history
// @Tags         audit
// @Produce      json
// @Param        entryId  path      int  true   "Entry ID"
// @Param        limit    query     int  false  "Maximum events (default 50, max 500)"
// @Success      200      {array}   domain.AuditEvent
// @Failure      500      {object}  failureResponse
// @Router       /api/audit/entries/{entryId} [get]
func (h *AuditHandler) EntryHistory(c echo.Context) error {
	const msg = "Failed to fetch audit history"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badInput(c, msg, err)
		}
	}

	events, err := h.audit.History(c.Request().Context(), entryID, limit)
	if err != nil {
		return badInput(c, msg, err)
	}
	return c.JSON(http.StatusOK, events)
}
