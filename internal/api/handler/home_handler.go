package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/api/middleware"
	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// HomeHandler renders the diary overview.
type HomeHandler struct {
	gw ports.DiaryGateway
}

func NewHomeHandler(gw ports.DiaryGateway) *HomeHandler {
	return &HomeHandler{gw: gw}
}

type homePage struct {
	User    domain.User
	Entries []domain.Entry
	Error   string
}

// Home lists the entries newest first. A backend failure still renders the
// page, with the error shown above an empty table.
func (h *HomeHandler) Home(c echo.Context) error {
	page := homePage{User: domain.User{Name: actor(c)}}
	if sess, ok := middleware.SessionFrom(c); ok {
		page.User = sess.User()
	}

	res := h.gw.ListEntries(c.Request().Context())
	if res.Failed() {
		page.Error = res.Err.Message
	} else {
		page.Entries = res.Value()
	}
	sort.SliceStable(page.Entries, func(i, j int) bool {
		return page.Entries[i].Day() > page.Entries[j].Day()
	})

	return c.Render(http.StatusOK, "home.html", page)
}
