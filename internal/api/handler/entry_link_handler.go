package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

type entryIngredientRequest struct {
	IngredientID int64  `json:"ingredientId" validate:"required,gt=0"`
	Notes        string `json:"notes"`
}

type entrySymptomRequest struct {
	SymptomID int64  `json:"symptomId" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type entrySupplementRequest struct {
	EntryID      int64 `json:"entryId" validate:"required,gt=0"`
	SupplementID int64 `json:"supplementId" validate:"required,gt=0"`
}

// ── Entry ingredients ─────────────────────────────────────────────────────────

// ListEntryIngredients returns the ingredients attached to an entry.
//
// @Summary      List entry ingredients
// @Tags         entry-ingredients
// @Produce      json
// @Param        entryId  path      int  true  "Entry ID"
// @Success      200      {array}   domain.EntryIngredient
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  failureResponse
// @Router       /api/entry-ingredients/{entryId} [get]
func (h *ResourceHandler) ListEntryIngredients(c echo.Context) error {
	const msg = "Failed to fetch entry ingredients"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}
	return respond(c, h.gw.ListEntryIngredients(c.Request().Context(), entryID), msg)
}

// AddEntryIngredient attaches an ingredient to an entry.
//
// @Summary      Add entry ingredient
// @Tags         entry-ingredients
// @Accept       json
// @Produce      json
// @Param        entryId  path      int                     true  "Entry ID"
// @Param        body     body      entryIngredientRequest  true  "Ingredient and notes"
// @Success      200      {object}  domain.EntryIngredient
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  failureResponse
// @Router       /api/entry-ingredients/{entryId} [post]
func (h *ResourceHandler) AddEntryIngredient(c echo.Context) error {
	const msg = "Failed to add entry ingredient"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}
	var req entryIngredientRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.AddEntryIngredient(c.Request().Context(), domain.EntryIngredient{
		EntryID:      entryID,
		IngredientID: req.IngredientID,
		Notes:        req.Notes,
	})
	err = respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-ingredients", Action: "create", EntryID: entryID, TargetID: req.IngredientID}, res.Err)
	return err
}

// UpdateEntryIngredient replaces the notes of an entry ingredient.
//
// @Summary      Update entry ingredient notes
// @Tags         entry-ingredients
// @Accept       json
// @Produce      json
// @Param        entryId       path      int           true  "Entry ID"
// @Param        ingredientId  path      int           true  "Ingredient ID"
// @Param        body          body      notesRequest  true  "Notes"
// @Success      200           {object}  domain.EntryIngredient
// @Failure      400           {object}  map[string]string
// @Failure      500           {object}  failureResponse
// @Router       /api/entry-ingredients/{entryId}/{ingredientId} [put]
func (h *ResourceHandler) UpdateEntryIngredient(c echo.Context) error {
	const msg = "Failed to update entry ingredient"
	entryID, ingredientID, err := pathIDs(c, "entryId", "ingredientId")
	if err != nil {
		return badInput(c, msg, err)
	}
	var req notesRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.UpdateEntryIngredientNotes(c.Request().Context(), entryID, ingredientID, req.Notes)
	err = respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-ingredients", Action: "update", EntryID: entryID, TargetID: ingredientID}, res.Err)
	return err
}

// RemoveEntryIngredient detaches an ingredient from an entry.
//
// @Summary      Remove entry ingredient
// @Tags         entry-ingredients
// @Param        entryId       path  int  true  "Entry ID"
// @Param        ingredientId  path  int  true  "Ingredient ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/entry-ingredients/{entryId}/{ingredientId} [delete]
func (h *ResourceHandler) RemoveEntryIngredient(c echo.Context) error {
	const msg = "Failed to remove entry ingredient"
	entryID, ingredientID, err := pathIDs(c, "entryId", "ingredientId")
	if err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.RemoveEntryIngredient(c.Request().Context(), entryID, ingredientID)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-ingredients", Action: "delete", EntryID: entryID, TargetID: ingredientID}, res.Err)
	return err
}

// ── Entry symptoms ────────────────────────────────────────────────────────────

// ListEntrySymptoms returns the symptoms attached to an entry.
//
// @Summary      List entry symptoms
// @Tags         entry-symptoms
// @Produce      json
// @Param        entryId  path      int  true  "Entry ID"
// @Success      200      {array}   domain.EntrySymptom
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  failureResponse
// @Router       /api/entry-symptoms/{entryId} [get]
func (h *ResourceHandler) ListEntrySymptoms(c echo.Context) error {
	const msg = "Failed to fetch entry symptoms"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}
	return respond(c, h.gw.ListEntrySymptoms(c.Request().Context(), entryID), msg)
}

// AddEntrySymptom attaches a symptom to an entry.
//
// @Summary      Add entry symptom
// @Tags         entry-symptoms
// @Accept       json
// @Produce      json
// @Param        entryId  path      int                  true  "Entry ID"
// @Param        body     body      entrySymptomRequest  true  "Symptom and notes"
// @Success      200      {object}  domain.EntrySymptom
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  failureResponse
// @Router       /api/entry-symptoms/{entryId} [post]
func (h *ResourceHandler) AddEntrySymptom(c echo.Context) error {
	const msg = "Failed to add entry symptom"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}
	var req entrySymptomRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.AddEntrySymptom(c.Request().Context(), domain.EntrySymptom{
		EntryID:   entryID,
		SymptomID: req.SymptomID,
		Notes:     req.Notes,
	})
	err = respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-symptoms", Action: "create", EntryID: entryID, TargetID: req.SymptomID}, res.Err)
	return err
}

// UpdateEntrySymptom replaces the notes of an entry symptom.
//
// @Summary      Update entry symptom notes
// @Tags         entry-symptoms
// @Accept       json
// @Produce      json
// @Param        entryId    path      int           true  "Entry ID"
// @Param        symptomId  path      int           true  "Symptom ID"
// @Param        body       body      notesRequest  true  "Notes"
// @Success      200        {object}  domain.EntrySymptom
// @Failure      400        {object}  map[string]string
// @Failure      500        {object}  failureResponse
// @Router       /api/entry-symptoms/{entryId}/{symptomId} [put]
func (h *ResourceHandler) UpdateEntrySymptom(c echo.Context) error {
	const msg = "Failed to update entry symptom"
	entryID, symptomID, err := pathIDs(c, "entryId", "symptomId")
	if err != nil {
		return badInput(c, msg, err)
	}
	var req notesRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.UpdateEntrySymptomNotes(c.Request().Context(), entryID, symptomID, req.Notes)
	err = respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-symptoms", Action: "update", EntryID: entryID, TargetID: symptomID}, res.Err)
	return err
}

// RemoveEntrySymptom detaches a symptom from an entry.
//
// @Summary      Remove entry symptom
// @Tags         entry-symptoms
// @Param        entryId    path  int  true  "Entry ID"
// @Param        symptomId  path  int  true  "Symptom ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/entry-symptoms/{entryId}/{symptomId} [delete]
func (h *ResourceHandler) RemoveEntrySymptom(c echo.Context) error {
	const msg = "Failed to remove entry symptom"
	entryID, symptomID, err := pathIDs(c, "entryId", "symptomId")
	if err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.RemoveEntrySymptom(c.Request().Context(), entryID, symptomID)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-symptoms", Action: "delete", EntryID: entryID, TargetID: symptomID}, res.Err)
	return err
}

// ── Entry supplements ─────────────────────────────────────────────────────────

// AddEntrySupplement attaches a supplement to an entry.
//
// @Summary      Add entry supplement
// @Tags         entry-supplements
// @Accept       json
// @Produce      json
// @Param        body  body      entrySupplementRequest  true  "Entry and supplement"
// @Success      200   {object}  domain.EntrySupplement
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/entry-supplements [post]
func (h *ResourceHandler) AddEntrySupplement(c echo.Context) error {
	const msg = "Failed to add entry supplement"
	var req entrySupplementRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.AddEntrySupplement(c.Request().Context(), req.EntryID, req.SupplementID)
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-supplements", Action: "create", EntryID: req.EntryID, TargetID: req.SupplementID}, res.Err)
	return err
}

// ListEntrySupplements returns the supplements attached to an entry.
//
// @Summary      List entry supplements
// @Tags         entry-supplements
// @Produce      json
// @Param        entryId  path      int  true  "Entry ID"
// @Success      200      {array}   domain.EntrySupplement
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  failureResponse
// @Router       /api/entry-supplements/by-entry/{entryId} [get]
func (h *ResourceHandler) ListEntrySupplements(c echo.Context) error {
	const msg = "Failed to fetch entry supplements"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}
	return respond(c, h.gw.ListEntrySupplements(c.Request().Context(), entryID), msg)
}

// RemoveEntrySupplement detaches a supplement from an entry.
//
// @Summary      Remove entry supplement
// @Tags         entry-supplements
// @Param        entryId       path  int  true  "Entry ID"
// @Param        supplementId  path  int  true  "Supplement ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/entry-supplements/{entryId}/{supplementId} [delete]
func (h *ResourceHandler) RemoveEntrySupplement(c echo.Context) error {
	const msg = "Failed to remove entry supplement"
	entryID, supplementID, err := pathIDs(c, "entryId", "supplementId")
	if err != nil {
		return badInput(c, msg, err)
	}

	res := h.gw.RemoveEntrySupplement(c.Request().Context(), entryID, supplementID)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-supplements", Action: "delete", EntryID: entryID, TargetID: supplementID}, res.Err)
	return err
}
