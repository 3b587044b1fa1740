package syncstore

import (
	"context"
	"strings"
	"sync"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

// catalogGateway is the part of the gateway the catalog stores use.
type catalogGateway interface {
	ListIngredients(ctx context.Context) domain.Result[[]domain.Ingredient]
	CreateIngredient(ctx context.Context, name string) domain.Result[domain.Ingredient]
	ListSymptoms(ctx context.Context) domain.Result[[]domain.Symptom]
	CreateSymptom(ctx context.Context, title string) domain.Result[domain.Symptom]
	ListSupplements(ctx context.Context) domain.Result[[]domain.Supplement]
	CreateSupplement(ctx context.Context, name string) domain.Result[domain.Supplement]
	DeleteSupplement(ctx context.Context, id int64) domain.Result[ports.Ack]
	ListMeals(ctx context.Context) domain.Result[[]domain.Meal]
	CreateMeal(ctx context.Context, in ports.NewMeal) domain.Result[domain.Meal]
	AddMealIngredient(ctx context.Context, mealID, ingredientID int64) domain.Result[ports.Ack]
	RemoveMealIngredient(ctx context.Context, mealID, ingredientID int64) domain.Result[ports.Ack]
}

var _ catalogGateway = ports.DiaryGateway(nil)

// created stores the payload of a create result for the mirror. A create
// confirmed without a body leaves ok false and nothing is appended.
func created[T any](res domain.Result[T], out *T, ok *bool) error {
	if res.Failed() {
		return res.Failure()
	}
	if res.Data != nil {
		*out = *res.Data
		*ok = true
	}
	return nil
}

func unkeyed[T any](list func(context.Context) domain.Result[[]T]) func(context.Context, int64) domain.Result[[]T] {
	return func(ctx context.Context, _ int64) domain.Result[[]T] { return list(ctx) }
}

// search is a case-insensitive substring filter over a collection.
type search struct {
	mu   sync.Mutex
	term string
}

func (s *search) set(term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()
}

func (s *search) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

func (s *search) matches(name string) bool {
	term := s.get()
	return term == "" || strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// ── Ingredients ───────────────────────────────────────────────────────────────

// Ingredients caches the ingredient catalog.
type Ingredients struct {
	gw catalogGateway
	c  *collection[domain.Ingredient]
}

func NewIngredients(gw catalogGateway, opts ...Option) *Ingredients {
	return &Ingredients{
		gw: gw,
		c:  newCollection("ingredients", false, unkeyed(gw.ListIngredients), buildOptions(opts)),
	}
}

func (s *Ingredients) Load(ctx context.Context) error { return s.c.load(ctx) }
func (s *Ingredients) Items() []domain.Ingredient     { return s.c.snapshot() }
func (s *Ingredients) Loading() bool                  { return s.c.isLoading() }
func (s *Ingredients) Err() error                     { return s.c.lastErr() }
func (s *Ingredients) Close()                         { s.c.close() }

// Add creates an ingredient and appends it.
func (s *Ingredients) Add(ctx context.Context, name string) (domain.Ingredient, error) {
	var ing domain.Ingredient
	var ok bool
	err := s.c.mutate(ctx, "add",
		func(ctx context.Context, _ int64) error {
			return created(s.gw.CreateIngredient(ctx, name), &ing, &ok)
		},
		func(items []domain.Ingredient, _ int64) []domain.Ingredient {
			if !ok {
				return items
			}
			return appendCopy(items, ing)
		})
	return ing, err
}

// ── Symptoms ──────────────────────────────────────────────────────────────────

// Symptoms caches the symptom catalog.
type Symptoms struct {
	gw catalogGateway
	c  *collection[domain.Symptom]
}

func NewSymptoms(gw catalogGateway, opts ...Option) *Symptoms {
	return &Symptoms{
		gw: gw,
		c:  newCollection("symptoms", false, unkeyed(gw.ListSymptoms), buildOptions(opts)),
	}
}

func (s *Symptoms) Load(ctx context.Context) error { return s.c.load(ctx) }
func (s *Symptoms) Items() []domain.Symptom        { return s.c.snapshot() }
func (s *Symptoms) Loading() bool                  { return s.c.isLoading() }
func (s *Symptoms) Err() error                     { return s.c.lastErr() }
func (s *Symptoms) Close()                         { s.c.close() }

// Add creates a symptom and appends it.
func (s *Symptoms) Add(ctx context.Context, title string) (domain.Symptom, error) {
	var sym domain.Symptom
	var ok bool
	err := s.c.mutate(ctx, "add",
		func(ctx context.Context, _ int64) error {
			return created(s.gw.CreateSymptom(ctx, title), &sym, &ok)
		},
		func(items []domain.Symptom, _ int64) []domain.Symptom {
			if !ok {
				return items
			}
			return appendCopy(items, sym)
		})
	return sym, err
}

// ── Supplements ───────────────────────────────────────────────────────────────

// Supplements caches the supplement catalog and filters it by a search term.
type Supplements struct {
	gw     catalogGateway
	c      *collection[domain.Supplement]
	filter search
}

func NewSupplements(gw catalogGateway, opts ...Option) *Supplements {
	return &Supplements{
		gw: gw,
		c:  newCollection("supplements", false, unkeyed(gw.ListSupplements), buildOptions(opts)),
	}
}

func (s *Supplements) Load(ctx context.Context) error { return s.c.load(ctx) }
func (s *Supplements) Loading() bool                  { return s.c.isLoading() }
func (s *Supplements) Err() error                     { return s.c.lastErr() }
func (s *Supplements) Close()                         { s.c.close() }

// SetSearch sets the term Items filters by. An empty term shows everything.
func (s *Supplements) SetSearch(term string) { s.filter.set(term) }

// Items returns the supplements whose name contains the search term.
func (s *Supplements) Items() []domain.Supplement {
	return filterOut(s.c.snapshot(), func(sup domain.Supplement) bool { return !s.filter.matches(sup.Name) })
}

// Add creates a supplement and appends it.
func (s *Supplements) Add(ctx context.Context, name string) (domain.Supplement, error) {
	var sup domain.Supplement
	var ok bool
	err := s.c.mutate(ctx, "add",
		func(ctx context.Context, _ int64) error {
			return created(s.gw.CreateSupplement(ctx, name), &sup, &ok)
		},
		func(items []domain.Supplement, _ int64) []domain.Supplement {
			if !ok {
				return items
			}
			return appendCopy(items, sup)
		})
	return sup, err
}

// Delete removes a supplement from the catalog.
func (s *Supplements) Delete(ctx context.Context, id int64) error {
	return s.c.mutate(ctx, "delete",
		func(ctx context.Context, _ int64) error {
			return s.gw.DeleteSupplement(ctx, id).Failure()
		},
		func(items []domain.Supplement, _ int64) []domain.Supplement {
			return filterOut(items, func(sup domain.Supplement) bool { return sup.ID == id })
		})
}

// ── Meals ─────────────────────────────────────────────────────────────────────

// Meals caches the saved meals and filters them by a search term.
type Meals struct {
	gw     catalogGateway
	c      *collection[domain.Meal]
	filter search
}

func NewMeals(gw catalogGateway, opts ...Option) *Meals {
	return &Meals{
		gw: gw,
		c:  newCollection("meals", false, unkeyed(gw.ListMeals), buildOptions(opts)),
	}
}

func (s *Meals) Load(ctx context.Context) error { return s.c.load(ctx) }
func (s *Meals) Loading() bool                  { return s.c.isLoading() }
func (s *Meals) Err() error                     { return s.c.lastErr() }
func (s *Meals) Close()                         { s.c.close() }
func (s *Meals) SetSearch(term string)          { s.filter.set(term) }

// Items returns the meals whose name contains the search term.
func (s *Meals) Items() []domain.Meal {
	return filterOut(s.c.snapshot(), func(m domain.Meal) bool { return !s.filter.matches(m.Name) })
}

// Add creates a meal from a name and an initial ingredient set.
func (s *Meals) Add(ctx context.Context, name string, ingredientIDs ...int64) (domain.Meal, error) {
	var meal domain.Meal
	var ok bool
	err := s.c.mutate(ctx, "add",
		func(ctx context.Context, _ int64) error {
			return created(s.gw.CreateMeal(ctx, ports.NewMeal{Name: name, IngredientIDs: ingredientIDs}), &meal, &ok)
		},
		func(items []domain.Meal, _ int64) []domain.Meal {
			if !ok {
				return items
			}
			return appendCopy(items, meal)
		})
	return meal, err
}

// AddIngredient adds an ingredient to a meal. The local copy gets an
// id-only placeholder until the next load fills in the name.
func (s *Meals) AddIngredient(ctx context.Context, mealID, ingredientID int64) error {
	return s.c.mutate(ctx, "add ingredient",
		func(ctx context.Context, _ int64) error {
			return s.gw.AddMealIngredient(ctx, mealID, ingredientID).Failure()
		},
		func(items []domain.Meal, _ int64) []domain.Meal {
			return mapMeal(items, mealID, func(m domain.Meal) domain.Meal {
				m.Ingredients = appendCopy(m.Ingredients, domain.Ingredient{ID: ingredientID})
				return m
			})
		})
}

// RemoveIngredient removes an ingredient from a meal.
func (s *Meals) RemoveIngredient(ctx context.Context, mealID, ingredientID int64) error {
	return s.c.mutate(ctx, "remove ingredient",
		func(ctx context.Context, _ int64) error {
			return s.gw.RemoveMealIngredient(ctx, mealID, ingredientID).Failure()
		},
		func(items []domain.Meal, _ int64) []domain.Meal {
			return mapMeal(items, mealID, func(m domain.Meal) domain.Meal {
				m.Ingredients = filterOut(m.Ingredients, func(i domain.Ingredient) bool { return i.ID == ingredientID })
				return m
			})
		})
}

func mapMeal(items []domain.Meal, id int64, fn func(domain.Meal) domain.Meal) []domain.Meal {
	out := make([]domain.Meal, len(items))
	for i, m := range items {
		if m.ID == id {
			m = fn(m)
		}
		out[i] = m
	}
	return out
}
