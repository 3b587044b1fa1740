package ports

import (
	"context"
	"encoding/json"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// Ack is the payload of operations whose response body carries nothing the
// caller needs. It is nil for 204 and empty responses.
type Ack = json.RawMessage

// NewEntry is the body of an entry creation.
type NewEntry struct {
	Date        string `json:"date"`
	Symptomatic bool   `json:"symptomatic"`
}

// NewMeal is the body of a meal creation.
type NewMeal struct {
	Name          string  `json:"name"`
	IngredientIDs []int64 `json:"ingredientIds"`
}

// DiaryGateway is every operation the remote backend offers. Each call
// reports failure through the Result, never through a panic.
type DiaryGateway interface {
	ListEntries(ctx context.Context) domain.Result[[]domain.Entry]
	CreateEntry(ctx context.Context, in NewEntry) domain.Result[domain.Entry]

	ListIngredients(ctx context.Context) domain.Result[[]domain.Ingredient]
	CreateIngredient(ctx context.Context, name string) domain.Result[domain.Ingredient]

	ListSymptoms(ctx context.Context) domain.Result[[]domain.Symptom]
	CreateSymptom(ctx context.Context, title string) domain.Result[domain.Symptom]

	ListSupplements(ctx context.Context) domain.Result[[]domain.Supplement]
	CreateSupplement(ctx context.Context, name string) domain.Result[domain.Supplement]
	GetSupplement(ctx context.Context, id int64) domain.Result[domain.Supplement]
	DeleteSupplement(ctx context.Context, id int64) domain.Result[Ack]

	ListEntryIngredients(ctx context.Context, entryID int64) domain.Result[[]domain.EntryIngredient]
	AddEntryIngredient(ctx context.Context, in domain.EntryIngredient) domain.Result[domain.EntryIngredient]
	UpdateEntryIngredientNotes(ctx context.Context, entryID, ingredientID int64, notes string) domain.Result[domain.EntryIngredient]
	RemoveEntryIngredient(ctx context.Context, entryID, ingredientID int64) domain.Result[Ack]

	ListEntrySymptoms(ctx context.Context, entryID int64) domain.Result[[]domain.EntrySymptom]
	AddEntrySymptom(ctx context.Context, in domain.EntrySymptom) domain.Result[domain.EntrySymptom]
	UpdateEntrySymptomNotes(ctx context.Context, entryID, symptomID int64, notes string) domain.Result[domain.EntrySymptom]
	RemoveEntrySymptom(ctx context.Context, entryID, symptomID int64) domain.Result[Ack]

	ListEntrySupplements(ctx context.Context, entryID int64) domain.Result[[]domain.EntrySupplement]
	AddEntrySupplement(ctx context.Context, entryID, supplementID int64) domain.Result[domain.EntrySupplement]
	RemoveEntrySupplement(ctx context.Context, entryID, supplementID int64) domain.Result[Ack]

	ListSafeIngredients(ctx context.Context) domain.Result[domain.IngredientMarks]
	MarkSafe(ctx context.Context, ingredientID int64) domain.Result[Ack]
	UnmarkSafe(ctx context.Context, ingredientID int64) domain.Result[Ack]
	ListUnsafeIngredients(ctx context.Context) domain.Result[domain.IngredientMarks]
	MarkUnsafe(ctx context.Context, ingredientID int64) domain.Result[Ack]
	UnmarkUnsafe(ctx context.Context, ingredientID int64) domain.Result[Ack]

	ListMeals(ctx context.Context) domain.Result[[]domain.Meal]
	CreateMeal(ctx context.Context, in NewMeal) domain.Result[domain.Meal]
	AddMealIngredient(ctx context.Context, mealID, ingredientID int64) domain.Result[Ack]
	RemoveMealIngredient(ctx context.Context, mealID, ingredientID int64) domain.Result[Ack]

	ListEntryMeals(ctx context.Context, entryID int64) domain.Result[[]domain.EntryMeal]
	AddEntryMeal(ctx context.Context, entryID, mealID int64) domain.Result[domain.EntryMeal]
	RemoveEntryMeal(ctx context.Context, entryID, mealID int64) domain.Result[Ack]
}
