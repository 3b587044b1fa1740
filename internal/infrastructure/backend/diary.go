package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

var _ ports.DiaryGateway = (*Client)(nil)

func get[T any](ctx context.Context, c *Client, path string) domain.Result[T] {
	return Call[T](ctx, c, Request{Method: http.MethodGet, Path: path})
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) domain.Result[T] {
	return Call[T](ctx, c, Request{Method: method, Path: path, Body: body})
}

// orEcho substitutes fallback when the backend confirmed a write without
// returning the record.
func orEcho[T any](res domain.Result[T], fallback T) domain.Result[T] {
	if res.Err == nil && res.Data == nil {
		return domain.Ok(&fallback)
	}
	return res
}

// ── Entries ───────────────────────────────────────────────────────────────────

func (c *Client) ListEntries(ctx context.Context) domain.Result[[]domain.Entry] {
	return get[[]domain.Entry](ctx, c, "/entries")
}

func (c *Client) CreateEntry(ctx context.Context, in ports.NewEntry) domain.Result[domain.Entry] {
	return send[domain.Entry](ctx, c, http.MethodPost, "/entries", in)
}

// ── Catalogs ──────────────────────────────────────────────────────────────────

func (c *Client) ListIngredients(ctx context.Context) domain.Result[[]domain.Ingredient] {
	return get[[]domain.Ingredient](ctx, c, "/ingredients")
}

func (c *Client) CreateIngredient(ctx context.Context, name string) domain.Result[domain.Ingredient] {
	return send[domain.Ingredient](ctx, c, http.MethodPost, "/ingredients", map[string]string{"name": name})
}

func (c *Client) ListSymptoms(ctx context.Context) domain.Result[[]domain.Symptom] {
	return get[[]domain.Symptom](ctx, c, "/symptoms")
}

func (c *Client) CreateSymptom(ctx context.Context, title string) domain.Result[domain.Symptom] {
	return send[domain.Symptom](ctx, c, http.MethodPost, "/symptoms", map[string]string{"title": title})
}

func (c *Client) ListSupplements(ctx context.Context) domain.Result[[]domain.Supplement] {
	return get[[]domain.Supplement](ctx, c, "/supplements")
}

func (c *Client) CreateSupplement(ctx context.Context, name string) domain.Result[domain.Supplement] {
	return send[domain.Supplement](ctx, c, http.MethodPost, "/supplements", map[string]string{"name": name})
}

func (c *Client) GetSupplement(ctx context.Context, id int64) domain.Result[domain.Supplement] {
	return get[domain.Supplement](ctx, c, fmt.Sprintf("/supplements/%d", id))
}

func (c *Client) DeleteSupplement(ctx context.Context, id int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/supplements/%d", id), nil)
}

// ── Entry ingredients ─────────────────────────────────────────────────────────

func (c *Client) ListEntryIngredients(ctx context.Context, entryID int64) domain.Result[[]domain.EntryIngredient] {
	return get[[]domain.EntryIngredient](ctx, c, fmt.Sprintf("/entry-ingredients/by-entry/%d", entryID))
}

func (c *Client) AddEntryIngredient(ctx context.Context, in domain.EntryIngredient) domain.Result[domain.EntryIngredient] {
	return orEcho(send[domain.EntryIngredient](ctx, c, http.MethodPost, "/entry-ingredients", in), in)
}

func (c *Client) UpdateEntryIngredientNotes(ctx context.Context, entryID, ingredientID int64, notes string) domain.Result[domain.EntryIngredient] {
	path := fmt.Sprintf("/entry-ingredients/%d/%d", entryID, ingredientID)
	res := send[domain.EntryIngredient](ctx, c, http.MethodPut, path, map[string]string{"notes": notes})
	return orEcho(res, domain.EntryIngredient{EntryID: entryID, IngredientID: ingredientID, Notes: notes})
}

func (c *Client) RemoveEntryIngredient(ctx context.Context, entryID, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/entry-ingredients/%d/%d", entryID, ingredientID), nil)
}

// ── Entry symptoms ────────────────────────────────────────────────────────────

func (c *Client) ListEntrySymptoms(ctx context.Context, entryID int64) domain.Result[[]domain.EntrySymptom] {
	return get[[]domain.EntrySymptom](ctx, c, fmt.Sprintf("/entry-symptoms/by-entry/%d", entryID))
}

func (c *Client) AddEntrySymptom(ctx context.Context, in domain.EntrySymptom) domain.Result[domain.EntrySymptom] {
	body := domain.EntrySymptom{EntryID: in.EntryID, SymptomID: in.SymptomID, Notes: in.Notes}
	return orEcho(send[domain.EntrySymptom](ctx, c, http.MethodPost, "/entry-symptoms", body), in)
}

func (c *Client) UpdateEntrySymptomNotes(ctx context.Context, entryID, symptomID int64, notes string) domain.Result[domain.EntrySymptom] {
	path := fmt.Sprintf("/entry-symptoms/%d/%d", entryID, symptomID)
	res := send[domain.EntrySymptom](ctx, c, http.MethodPut, path, map[string]string{"notes": notes})
	return orEcho(res, domain.EntrySymptom{EntryID: entryID, SymptomID: symptomID, Notes: notes})
}

func (c *Client) RemoveEntrySymptom(ctx context.Context, entryID, symptomID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/entry-symptoms/%d/%d", entryID, symptomID), nil)
}

// ── Entry supplements ─────────────────────────────────────────────────────────

func (c *Client) ListEntrySupplements(ctx context.Context, entryID int64) domain.Result[[]domain.EntrySupplement] {
	return get[[]domain.EntrySupplement](ctx, c, fmt.Sprintf("/entry-supplements/by-entry/%d", entryID))
}

func (c *Client) AddEntrySupplement(ctx context.Context, entryID, supplementID int64) domain.Result[domain.EntrySupplement] {
	in := domain.EntrySupplement{EntryID: entryID, SupplementID: supplementID}
	return orEcho(send[domain.EntrySupplement](ctx, c, http.MethodPost, "/entry-supplements", in), in)
}

func (c *Client) RemoveEntrySupplement(ctx context.Context, entryID, supplementID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/entry-supplements/%d/%d", entryID, supplementID), nil)
}

// ── Safe / unsafe ingredients ─────────────────────────────────────────────────

type markRequest struct {
	IngredientID int64 `json:"ingredientId"`
}

func (c *Client) ListSafeIngredients(ctx context.Context) domain.Result[domain.IngredientMarks] {
	return get[domain.IngredientMarks](ctx, c, "/safe-ingredients")
}

func (c *Client) MarkSafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodPost, "/safe-ingredients", markRequest{IngredientID: ingredientID})
}

func (c *Client) UnmarkSafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/safe-ingredients/%d", ingredientID), nil)
}

func (c *Client) ListUnsafeIngredients(ctx context.Context) domain.Result[domain.IngredientMarks] {
	return get[domain.IngredientMarks](ctx, c, "/unsafe-ingredients")
}

func (c *Client) MarkUnsafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodPost, "/unsafe-ingredients", markRequest{IngredientID: ingredientID})
}

func (c *Client) UnmarkUnsafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/unsafe-ingredients/%d", ingredientID), nil)
}

// ── Meals ─────────────────────────────────────────────────────────────────────

func (c *Client) ListMeals(ctx context.Context) domain.Result[[]domain.Meal] {
	return get[[]domain.Meal](ctx, c, "/meals")
}

func (c *Client) CreateMeal(ctx context.Context, in ports.NewMeal) domain.Result[domain.Meal] {
	if in.IngredientIDs == nil {
		in.IngredientIDs = []int64{}
	}
	return send[domain.Meal](ctx, c, http.MethodPost, "/meals", in)
}

func (c *Client) AddMealIngredient(ctx context.Context, mealID, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodPost, fmt.Sprintf("/meals/%d/ingredients", mealID), markRequest{IngredientID: ingredientID})
}

func (c *Client) RemoveMealIngredient(ctx context.Context, mealID, ingredientID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/meals/%d/ingredients/%d", mealID, ingredientID), nil)
}

// ── Entry meals ───────────────────────────────────────────────────────────────

func (c *Client) ListEntryMeals(ctx context.Context, entryID int64) domain.Result[[]domain.EntryMeal] {
	return get[[]domain.EntryMeal](ctx, c, fmt.Sprintf("/entry-meals/by-entry/%d", entryID))
}

func (c *Client) AddEntryMeal(ctx context.Context, entryID, mealID int64) domain.Result[domain.EntryMeal] {
	in := domain.EntryMeal{EntryID: entryID, MealID: mealID}
	return orEcho(send[domain.EntryMeal](ctx, c, http.MethodPost, "/entry-meals", in), in)
}

func (c *Client) RemoveEntryMeal(ctx context.Context, entryID, mealID int64) domain.Result[ports.Ack] {
	return send[ports.Ack](ctx, c, http.MethodDelete, fmt.Sprintf("/entry-meals/%d/%d", entryID, mealID), nil)
}
