package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

type nameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
}

type titleRequest struct {
	Title string `json:"title" validate:"required,notblank,max=200"`
}

// ── Ingredients ───────────────────────────────────────────────────────────────

// ListIngredients returns the ingredient catalog.
//
// @Summary      List ingredients
// @Tags         ingredients
// @Produce      json
// @Success      200  {array}   domain.Ingredient
// @Failure      500  {object}  failureResponse
// @Router       /api/ingredients [get]
func (h *ResourceHandler) ListIngredients(c echo.Context) error {
	return respond(c, h.gw.ListIngredients(c.Request().Context()), "Failed to fetch ingredients")
}

// CreateIngredient adds an ingredient to the catalog.
//
// @Summary      Create ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        body  body      nameRequest  true  "Ingredient name"
// @Success      200   {object}  domain.Ingredient
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/ingredients [post]
func (h *ResourceHandler) CreateIngredient(c echo.Context) error {
	const msg = "Failed to create ingredient"
	var req nameRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.CreateIngredient(c.Request().Context(), req.Name)
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "ingredients", Action: "create", TargetID: res.Value().ID}, res.Err)
	return err
}

// ── Symptoms ──────────────────────────────────────────────────────────────────

// ListSymptoms returns the symptom catalog.
//
// @Summary      List symptoms
// @Tags         symptoms
// @Produce      json
// @Success      200  {array}   domain.Symptom
// @Failure      500  {object}  failureResponse
// @Router       /api/symptoms [get]
func (h *ResourceHandler) ListSymptoms(c echo.Context) error {
	return respond(c, h.gw.ListSymptoms(c.Request().Context()), "Failed to fetch symptoms")
}

// CreateSymptom adds a symptom to the catalog.
//
// @Summary      Create symptom
// @Tags         symptoms
// @Accept       json
// @Produce      json
// @Param        body  body      titleRequest  true  "Symptom title"
// @Success      200   {object}  domain.Symptom
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/symptoms [post]
func (h *ResourceHandler) CreateSymptom(c echo.Context) error {
	const msg = "Failed to create symptom"
	var req titleRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.CreateSymptom(c.Request().Context(), req.Title)
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "symptoms", Action: "create", TargetID: res.Value().ID}, res.Err)
	return err
}

// ── Supplements ───────────────────────────────────────────────────────────────

// ListSupplements returns the supplement catalog.
//
// @Summary      List supplements
// @Tags         supplements
// @Produce      json
// @Success      200  {array}   domain.Supplement
// @Failure      500  {object}  failureResponse
// @Router       /api/supplements [get]
func (h *ResourceHandler) ListSupplements(c echo.Context) error {
	return respond(c, h.gw.ListSupplements(c.Request().Context()), "Failed to fetch supplements")
}

// CreateSupplement adds a supplement to the catalog.
//
// @Summary      Create supplement
// @Tags         supplements
// @Accept       json
// @Produce      json
// @Param        body  body      nameRequest  true  "Supplement name"
// @Success      200   {object}  domain.Supplement
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/supplements [post]
func (h *ResourceHandler) CreateSupplement(c echo.Context) error {
	const msg = "Failed to create supplement"
	var req nameRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.CreateSupplement(c.Request().Context(), req.Name)
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "supplements", Action: "create", TargetID: res.Value().ID}, res.Err)
	return err
}

// GetSupplement returns one supplement.
//
// @Summary      Get supplement
// @Tags         supplements
// @Produce      json
// @Param        id   path      int  true  "Supplement ID"
// @Success      200  {object}  domain.Supplement
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/supplements/{id} [get]
func (h *ResourceHandler) GetSupplement(c echo.Context) error {
	const msg = "Failed to fetch supplement"
	id, err := pathID(c, "id")
	if err != nil {
		return badInput(c, msg, err)
	}
	return respond(c, h.gw.GetSupplement(c.Request().Context(), id), msg)
}

// DeleteSupplement removes a supplement from the catalog.
//
// @Summary      Delete supplement
// @Tags         supplements
// @Param        id   path      int  true  "Supplement ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/supplements/{id} [delete]
func (h *ResourceHandler) DeleteSupplement(c echo.Context) error {
	const msg = "Failed to delete supplement"
	id, err := pathID(c, "id")
	if err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.DeleteSupplement(c.Request().Context(), id)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "supplements", Action: "delete", TargetID: id}, res.Err)
	return err
}
