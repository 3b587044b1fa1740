package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

type markRequest struct {
	IngredientID int64 `json:"ingredientId" validate:"required,gt=0"`
}

// markOps bundles the gateway calls for one of the two mark lists.
type markOps struct {
	resource string
	list     func(context.Context) domain.Result[domain.IngredientMarks]
	mark     func(context.Context, int64) domain.Result[ports.Ack]
	unmark   func(context.Context, int64) domain.Result[ports.Ack]
}

func (h *ResourceHandler) safeOps() markOps {
	return markOps{resource: "safe-ingredients", list: h.gw.ListSafeIngredients, mark: h.gw.MarkSafe, unmark: h.gw.UnmarkSafe}
}

func (h *ResourceHandler) unsafeOps() markOps {
	return markOps{resource: "unsafe-ingredients", list: h.gw.ListUnsafeIngredients, mark: h.gw.MarkUnsafe, unmark: h.gw.UnmarkUnsafe}
}

// ListSafeIngredients returns the safe list in its normalized flat form.
//
// @Summary      List safe ingredients
// @Tags         safe-ingredients
// @Produce      json
// @Success      200  {array}   domain.Ingredient
// @Failure      500  {object}  failureResponse
// @Router       /api/safe-ingredients [get]
func (h *ResourceHandler) ListSafeIngredients(c echo.Context) error {
	return h.listMarks(c, h.safeOps(), "Failed to fetch safe ingredients")
}

// MarkSafe adds an ingredient to the safe list.
//
// @Summary      Mark ingredient safe
// @Tags         safe-ingredients
// @Accept       json
// @Param        body  body  markRequest  true  "Ingredient"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/safe-ingredients [post]
func (h *ResourceHandler) MarkSafe(c echo.Context) error {
	return h.markIngredient(c, h.safeOps(), "Failed to mark ingredient as safe")
}

// UnmarkSafe removes an ingredient from the safe list.
//
// @Summary      Unmark safe ingredient
// @Tags         safe-ingredients
// @Param        ingredientId  path  int  true  "Ingredient ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/safe-ingredients/{ingredientId} [delete]
func (h *ResourceHandler) UnmarkSafe(c echo.Context) error {
	return h.unmarkIngredient(c, h.safeOps(), "Failed to remove safe ingredient")
}

// ListUnsafeIngredients returns the unsafe list in its normalized flat form.
//
// @Summary      List unsafe ingredients
// @Tags         unsafe-ingredients
// @Produce      json
// @Success      200  {array}   domain.Ingredient
// @Failure      500  {object}  failureResponse
// @Router       /api/unsafe-ingredients [get]
func (h *ResourceHandler) ListUnsafeIngredients(c echo.Context) error {
	return h.listMarks(c, h.unsafeOps(), "Failed to fetch unsafe ingredients")
}

// MarkUnsafe adds an ingredient to the unsafe list.
//
// @Summary      Mark ingredient unsafe
// @Tags         unsafe-ingredients
// @Accept       json
// @Param        body  body  markRequest  true  "Ingredient"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/unsafe-ingredients [post]
func (h *ResourceHandler) MarkUnsafe(c echo.Context) error {
	return h.markIngredient(c, h.unsafeOps(), "Failed to mark ingredient as unsafe")
}

// UnmarkUnsafe removes an ingredient from the unsafe list.
//
// @Summary      Unmark unsafe ingredient
// @Tags         unsafe-ingredients
// @Param        ingredientId  path  int  true  "Ingredient ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  failureResponse
// @Router       /api/unsafe-ingredients/{ingredientId} [delete]
func (h *ResourceHandler) UnmarkUnsafe(c echo.Context) error {
	return h.unmarkIngredient(c, h.unsafeOps(), "Failed to remove unsafe ingredient")
}

func (h *ResourceHandler) listMarks(c echo.Context, ops markOps, msg string) error {
	return respond(c, ops.list(c.Request().Context()), msg)
}

func (h *ResourceHandler) markIngredient(c echo.Context, ops markOps, msg string) error {
	var req markRequest
	if err := bindValid(c, &req); err != nil {
		return badInput(c, msg, err)
	}
	res := ops.mark(c.Request().Context(), req.IngredientID)
	err := acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: ops.resource, Action: "create", TargetID: req.IngredientID}, res.Err)
	return err
}

func (h *ResourceHandler) unmarkIngredient(c echo.Context, ops markOps, msg string) error {
	id, err := pathID(c, "ingredientId")
	if err != nil {
		return badInput(c, msg, err)
	}
	res := ops.unmark(c.Request().Context(), id)
	err = acknowledge(c, res, msg)
	audit(c, h.auditor, domain.AuditEvent{Resource: ops.resource, Action: "delete", TargetID: id}, res.Err)
	return err
}
