package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// ResourceHandler proxies the diary resources to the remote backend. Each
// method performs exactly one gateway call.
type ResourceHandler struct {
	gw      ports.DiaryGateway
	auditor Auditor
}

func NewResourceHandler(gw ports.DiaryGateway, auditor Auditor) *ResourceHandler {
	return &ResourceHandler{gw: gw, auditor: auditor}
}

type createEntryRequest struct {
	Date        string `json:"date" validate:"required,diarydate"`
	Symptomatic bool   `json:"symptomatic"`
}

// ListEntries returns every diary entry.
//
// @Summary      List entries
// @Tags         entries
// @Produce      json
// @Success      200  {array}   domain.Entry
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/entries [get]
func (h *ResourceHandler) ListEntries(c echo.Context) error {
	return respond(c, h.gw.ListEntries(c.Request().Context()), "Failed to fetch entries")
}

// CreateEntry creates a diary entry for a day.
//
// @Summary      Create entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body      createEntryRequest  true  "Entry date (YYYY-MM-DD or RFC 3339)"
// @Success      200   {object}  domain.Entry
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/entries [post]
func (h *ResourceHandler) CreateEntry(c echo.Context) error {
	const msg = "Failed to create entry"
	var req createEntryRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.CreateEntry(c.Request().Context(), ports.NewEntry{Date: req.Date, Symptomatic: req.Symptomatic})
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entries", Action: "create", EntryID: res.Value().ID}, res.Err)
	return err
}
