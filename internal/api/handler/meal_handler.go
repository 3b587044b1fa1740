package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

type createMealRequest struct {
	Name          string  `json:"name" validate:"required,notblank,max=200"`
	IngredientIDs []int64 `json:"ingredientIds" validate:"dive,gt=0"`
}

type entryMealRequest struct {
	EntryID int64 `json:"entryId" validate:"required,gt=0"`
	MealID  int64 `json:"mealId" validate:"required,gt=0"`
}

// ListMeals returns every saved meal.
//
// @Summary      List meals
// @Tags         meals
// @Produce      json
// @Success      200  {array}   domain.Meal
// @Failure      500  {object}  failureResponse
// @Router       /api/meals [get]
func (h *ResourceHandler) ListMeals(c echo.Context) error {
	return respond(c, h.gw.ListMeals(c.Request().Context()), "Failed to fetch meals")
}

// CreateMeal saves a named group of ingredients.
//
// @Summary      Create meal
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        body  body      createMealRequest  true  "Meal"
// @Success      200   {object}  domain.Meal
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/meals [post]
func (h *ResourceHandler) CreateMeal(c echo.Context) error {
	const msg = "Failed to create meal"
	var req createMealRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.CreateMeal(c.Request().Context(), ports.NewMeal{Name: req.Name, IngredientIDs: req.IngredientIDs})
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "meals", Action: "create", TargetID: res.Value().ID}, res.Err)
	return err
}

// AddMealIngredient adds an ingredient to a meal.
//
// @Summary      Add meal ingredient
// @Tags         meals
// @Accept       json
// @Param        mealId  path  int          true  "Meal ID"
// @Param        body    body  markRequest  true  "Ingredient"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/meals/{mealId}/ingredients [post]
func (h *ResourceHandler) AddMealIngredient(c echo.Context) error {
	const msg = "Failed to add ingredient to meal"
	mealID, err := pathID(c, "mealId")
	if err != nil {
		return badInput(c, msg, err)
	}
	var req markRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.AddMealIngredient(c.Request().Context(), mealID, req.IngredientID)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "meals", Action: "add-ingredient", TargetID: mealID}, res.Err)
	return err
}

// RemoveMealIngredient removes an ingredient from a meal.
//
// @Summary      Remove meal ingredient
// @Tags         meals
// @Param        mealId        path  int  true  "Meal ID"
// @Param        ingredientId  path  int  true  "Ingredient ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/meals/{mealId}/ingredients/{ingredientId} [delete]
func (h *ResourceHandler) RemoveMealIngredient(c echo.Context) error {
	const msg = "Failed to remove ingredient from meal"
	mealID, ingredientID, err := pathIDs(c, "mealId", "ingredientId")
	if err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.RemoveMealIngredient(c.Request().Context(), mealID, ingredientID)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "meals", Action: "remove-ingredient", TargetID: mealID}, res.Err)
	return err
}

// ListEntryMeals returns the meals attached to an entry.
//
// @Summary      List entry meals
// @Tags         entry-meals
// @Produce      json
// @Param        entryId  path      int  true  "Entry ID"
// @Success      200      {array}   domain.EntryMeal
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  failureResponse
// @Router       /api/entry-meals/by-entry/{entryId} [get]
func (h *ResourceHandler) ListEntryMeals(c echo.Context) error {
	const msg = "Failed to fetch entry meals"
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return badInput(c, msg, err)
	}
	return respond(c, h.gw.ListEntryMeals(c.Request().Context(), entryID), msg)
}

// AddEntryMeal attaches a meal to an entry.
//
// @Summary      Add entry meal
// @Tags         entry-meals
// @Accept       json
// @Produce      json
// @Param        body  body      entryMealRequest  true  "Entry and meal"
// @Success      200   {object}  domain.EntryMeal
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  failureResponse
// @Router       /api/entry-meals [post]
func (h *ResourceHandler) AddEntryMeal(c echo.Context) error {
	const msg = "Failed to add meal to entry"
	var req entryMealRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.AddEntryMeal(c.Request().Context(), req.EntryID, req.MealID)
	err := respond(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-meals", Action: "create", EntryID: req.EntryID, TargetID: req.MealID}, res.Err)
	return err
}

// RemoveEntryMeal detaches a meal from an entry.
//
// @Summary      Remove entry meal
// @Tags         entry-meals
// @Param        entryId  path  int  true  "Entry ID"
// @Param        mealId   path  int  true  "Meal ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/entry-meals/{entryId}/{mealId} [delete]
func (h *ResourceHandler) RemoveEntryMeal(c echo.Context) error {
	const msg = "Failed to remove meal from entry"
	entryID, mealID, err := pathIDs(c, "entryId", "mealId")
	if err != nil {
		return badInput(c, msg, err)
	}
	res := h.gw.RemoveEntryMeal(c.Request().Context(), entryID, mealID)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: "entry-meals", Action: "delete", EntryID: entryID, TargetID: mealID}, res.Err)
	return err
}
