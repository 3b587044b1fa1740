package syncstore

import (
	"context"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// entryGateway is the part of the gateway the per-entry stores use.
type entryGateway interface {
	ListEntryIngredients(ctx context.Context, entryID int64) domain.Result[[]domain.EntryIngredient]
	AddEntryIngredient(ctx context.Context, in domain.EntryIngredient) domain.Result[domain.EntryIngredient]
	UpdateEntryIngredientNotes(ctx context.Context, entryID, ingredientID int64, notes string) domain.Result[domain.EntryIngredient]
	RemoveEntryIngredient(ctx context.Context, entryID, ingredientID int64) domain.Result[ports.Ack]

	ListEntrySymptoms(ctx context.Context, entryID int64) domain.Result[[]domain.EntrySymptom]
	AddEntrySymptom(ctx context.Context, in domain.EntrySymptom) domain.Result[domain.EntrySymptom]
	UpdateEntrySymptomNotes(ctx context.Context, entryID, symptomID int64, notes string) domain.Result[domain.EntrySymptom]
	RemoveEntrySymptom(ctx context.Context, entryID, symptomID int64) domain.Result[ports.Ack]

	ListEntrySupplements(ctx context.Context, entryID int64) domain.Result[[]domain.EntrySupplement]
	AddEntrySupplement(ctx context.Context, entryID, supplementID int64) domain.Result[domain.EntrySupplement]
	RemoveEntrySupplement(ctx context.Context, entryID, supplementID int64) domain.Result[ports.Ack]

	ListEntryMeals(ctx context.Context, entryID int64) domain.Result[[]domain.EntryMeal]
	AddEntryMeal(ctx context.Context, entryID, mealID int64) domain.Result[domain.EntryMeal]
	RemoveEntryMeal(ctx context.Context, entryID, mealID int64) domain.Result[ports.Ack]
}

var _ entryGateway = ports.DiaryGateway(nil)

// ── Entry ingredients ─────────────────────────────────────────────────────────

// EntryIngredients caches the ingredients attached to the selected entry.
type EntryIngredients struct {
	gw entryGateway
	c  *collection[domain.EntryIngredient]
}

func NewEntryIngredients(gw entryGateway, opts ...Option) *EntryIngredients {
	return &EntryIngredients{
		gw: gw,
		c:  newCollection("entry-ingredients", true, gw.ListEntryIngredients, buildOptions(opts)),
	}
}

// SetEntry selects the entry and loads its ingredients. Selecting the same
// entry again does nothing; entry 0 clears the store.
func (s *EntryIngredients) SetEntry(ctx context.Context, entryID int64) error {
	return s.c.setKey(ctx, entryID)
}

func (s *EntryIngredients) Reload(ctx context.Context) error { return s.c.load(ctx) }
func (s *EntryIngredients) EntryID() int64                   { return s.c.currentKey() }
func (s *EntryIngredients) Items() []domain.EntryIngredient  { return s.c.snapshot() }
func (s *EntryIngredients) Loading() bool                    { return s.c.isLoading() }
func (s *EntryIngredients) Err() error                       { return s.c.lastErr() }
func (s *EntryIngredients) Close()                           { s.c.close() }

func (s *EntryIngredients) Add(ctx context.Context, ingredientID int64, notes string) error {
	return s.c.mutate(ctx, "add",
		func(ctx context.Context, entryID int64) error {
			in := domain.EntryIngredient{EntryID: entryID, IngredientID: ingredientID, Notes: notes}
			return s.gw.AddEntryIngredient(ctx, in).Failure()
		},
		func(items []domain.EntryIngredient, entryID int64) []domain.EntryIngredient {
			return appendCopy(items, domain.EntryIngredient{EntryID: entryID, IngredientID: ingredientID, Notes: notes})
		})
}

func (s *EntryIngredients) Remove(ctx context.Context, ingredientID int64) error {
	return s.c.mutate(ctx, "remove",
		func(ctx context.Context, entryID int64) error {
			return s.gw.RemoveEntryIngredient(ctx, entryID, ingredientID).Failure()
		},
		func(items []domain.EntryIngredient, _ int64) []domain.EntryIngredient {
			return filterOut(items, func(ei domain.EntryIngredient) bool { return ei.IngredientID == ingredientID })
		})
}

func (s *EntryIngredients) UpdateNotes(ctx context.Context, ingredientID int64, notes string) error {
	return s.c.mutate(ctx, "update notes",
		func(ctx context.Context, entryID int64) error {
			return s.gw.UpdateEntryIngredientNotes(ctx, entryID, ingredientID, notes).Failure()
		},
		func(items []domain.EntryIngredient, _ int64) []domain.EntryIngredient {
			out := make([]domain.EntryIngredient, len(items))
			for i, ei := range items {
				if ei.IngredientID == ingredientID {
					ei.Notes = notes
				}
				out[i] = ei
			}
			return out
		})
}

// ── Entry symptoms ────────────────────────────────────────────────────────────

// EntrySymptoms caches the symptoms attached to the selected entry.
type EntrySymptoms struct {
	gw entryGateway
	c  *collection[domain.EntrySymptom]
}

func NewEntrySymptoms(gw entryGateway, opts ...Option) *EntrySymptoms {
	return &EntrySymptoms{
		gw: gw,
		c:  newCollection("entry-symptoms", true, gw.ListEntrySymptoms, buildOptions(opts)),
	}
}

// SetEntry selects the entry and loads its symptoms. Selecting the same
// entry again does nothing; entry 0 clears the store.
func (s *EntrySymptoms) SetEntry(ctx context.Context, entryID int64) error {
	return s.c.setKey(ctx, entryID)
}

func (s *EntrySymptoms) Reload(ctx context.Context) error { return s.c.load(ctx) }
func (s *EntrySymptoms) EntryID() int64                   { return s.c.currentKey() }
func (s *EntrySymptoms) Items() []domain.EntrySymptom     { return s.c.snapshot() }
func (s *EntrySymptoms) Loading() bool                    { return s.c.isLoading() }
func (s *EntrySymptoms) Err() error                       { return s.c.lastErr() }
func (s *EntrySymptoms) Close()                           { s.c.close() }

func (s *EntrySymptoms) Add(ctx context.Context, symptomID int64, notes string) error {
	return s.c.mutate(ctx, "add",
		func(ctx context.Context, entryID int64) error {
			in := domain.EntrySymptom{EntryID: entryID, SymptomID: symptomID, Notes: notes}
			return s.gw.AddEntrySymptom(ctx, in).Failure()
		},
		func(items []domain.EntrySymptom, entryID int64) []domain.EntrySymptom {
			return appendCopy(items, domain.EntrySymptom{EntryID: entryID, SymptomID: symptomID, Notes: notes})
		})
}

func (s *EntrySymptoms) Remove(ctx context.Context, symptomID int64) error {
	return s.c.mutate(ctx, "remove",
		func(ctx context.Context, entryID int64) error {
			return s.gw.RemoveEntrySymptom(ctx, entryID, symptomID).Failure()
		},
		func(items []domain.EntrySymptom, _ int64) []domain.EntrySymptom {
			return filterOut(items, func(es domain.EntrySymptom) bool { return es.SymptomID == symptomID })
		})
}

func (s *EntrySymptoms) UpdateNotes(ctx context.Context, symptomID int64, notes string) error {
	return s.c.mutate(ctx, "update notes",
		func(ctx context.Context, entryID int64) error {
			return s.gw.UpdateEntrySymptomNotes(ctx, entryID, symptomID, notes).Failure()
		},
		func(items []domain.EntrySymptom, _ int64) []domain.EntrySymptom {
			out := make([]domain.EntrySymptom, len(items))
			for i, es := range items {
				if es.SymptomID == symptomID {
					es.Notes = notes
				}
				out[i] = es
			}
			return out
		})
}

// ── Entry supplements ─────────────────────────────────────────────────────────

// EntrySupplements caches the supplements attached to the selected entry.
type EntrySupplements struct {
	gw entryGateway
	c  *collection[domain.EntrySupplement]
}

func NewEntrySupplements(gw entryGateway, opts ...Option) *EntrySupplements {
	return &EntrySupplements{
		gw: gw,
		c:  newCollection("entry-supplements", true, gw.ListEntrySupplements, buildOptions(opts)),
	}
}

func (s *EntrySupplements) SetEntry(ctx context.Context, entryID int64) error {
	return s.c.setKey(ctx, entryID)
}

func (s *EntrySupplements) Reload(ctx context.Context) error { return s.c.load(ctx) }
func (s *EntrySupplements) EntryID() int64                   { return s.c.currentKey() }
func (s *EntrySupplements) Items() []domain.EntrySupplement  { return s.c.snapshot() }
func (s *EntrySupplements) Loading() bool                    { return s.c.isLoading() }
func (s *EntrySupplements) Err() error                       { return s.c.lastErr() }
func (s *EntrySupplements) Close()                           { s.c.close() }

func (s *EntrySupplements) Add(ctx context.Context, supplementID int64) error {
	return s.c.mutate(ctx, "add",
		func(ctx context.Context, entryID int64) error {
			return s.gw.AddEntrySupplement(ctx, entryID, supplementID).Failure()
		},
		func(items []domain.EntrySupplement, entryID int64) []domain.EntrySupplement {
			return appendCopy(items, domain.EntrySupplement{EntryID: entryID, SupplementID: supplementID})
		})
}

func (s *EntrySupplements) Remove(ctx context.Context, supplementID int64) error {
	return s.c.mutate(ctx, "remove",
		func(ctx context.Context, entryID int64) error {
			return s.gw.RemoveEntrySupplement(ctx, entryID, supplementID).Failure()
		},
		func(items []domain.EntrySupplement, _ int64) []domain.EntrySupplement {
			return filterOut(items, func(es domain.EntrySupplement) bool { return es.SupplementID == supplementID })
		})
}

// ── Entry meals ───────────────────────────────────────────────────────────────

// EntryMeals caches the meals attached to the selected entry. The backend
// expands each meal's ingredients, so every mutation re-fetches the list.
type EntryMeals struct {
	gw entryGateway
	c  *collection[domain.EntryMeal]
}

func NewEntryMeals(gw entryGateway, opts ...Option) *EntryMeals {
	o := buildOptions(opts)
	o.reconcile = true
	return &EntryMeals{
		gw: gw,
		c:  newCollection("entry-meals", true, gw.ListEntryMeals, o),
	}
}

func (s *EntryMeals) SetEntry(ctx context.Context, entryID int64) error {
	return s.c.setKey(ctx, entryID)
}

func (s *EntryMeals) Reload(ctx context.Context) error { return s.c.load(ctx) }
func (s *EntryMeals) EntryID() int64                   { return s.c.currentKey() }
func (s *EntryMeals) Items() []domain.EntryMeal        { return s.c.snapshot() }
func (s *EntryMeals) Loading() bool                    { return s.c.isLoading() }
func (s *EntryMeals) Err() error                       { return s.c.lastErr() }
func (s *EntryMeals) Close()                           { s.c.close() }

func (s *EntryMeals) Add(ctx context.Context, mealID int64) error {
	return s.c.mutate(ctx, "add",
		func(ctx context.Context, entryID int64) error {
			return s.gw.AddEntryMeal(ctx, entryID, mealID).Failure()
		}, nil)
}

func (s *EntryMeals) Remove(ctx context.Context, mealID int64) error {
	return s.c.mutate(ctx, "remove",
		func(ctx context.Context, entryID int64) error {
			return s.gw.RemoveEntryMeal(ctx, entryID, mealID).Failure()
		}, nil)
}
