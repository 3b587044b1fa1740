package syncstore

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
)

type marksGateway interface {
	ListSafeIngredients(ctx context.Context) domain.Result[domain.IngredientMarks]
	MarkSafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack]
	UnmarkSafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack]
	ListUnsafeIngredients(ctx context.Context) domain.Result[domain.IngredientMarks]
	MarkUnsafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack]
	UnmarkUnsafe(ctx context.Context, ingredientID int64) domain.Result[ports.Ack]
}

var _ marksGateway = ports.DiaryGateway(nil)

// flatten adapts a marks listing to the plain ingredient list the store keeps.
func flatten(list func(context.Context) domain.Result[domain.IngredientMarks]) func(context.Context, int64) domain.Result[[]domain.Ingredient] {
	return func(ctx context.Context, _ int64) domain.Result[[]domain.Ingredient] {
		res := list(ctx)
		if res.Failed() {
			return domain.Fail[[]domain.Ingredient](res.Err)
		}
		ings := res.Value().Ingredients
		return domain.Ok(&ings)
	}
}

// SafeUnsafe caches the safe and unsafe ingredient lists and keeps them
// mutually exclusive locally: marking an ingredient on one side removes it
// from the other.
type SafeUnsafe struct {
	gw     marksGateway
	safe   *collection[domain.Ingredient]
	unsafe *collection[domain.Ingredient]
}

func NewSafeUnsafe(gw marksGateway, opts ...Option) *SafeUnsafe {
	o := buildOptions(opts)
	return &SafeUnsafe{
		gw:     gw,
		safe:   newCollection("safe-ingredients", false, flatten(gw.ListSafeIngredients), o),
		unsafe: newCollection("unsafe-ingredients", false, flatten(gw.ListUnsafeIngredients), o),
	}
}

// Load fetches both lists in parallel and returns the first failure. Each
// list takes its own result, so one failing side does not blank the other.
func (s *SafeUnsafe) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.safe.load(ctx) })
	g.Go(func() error { return s.unsafe.load(ctx) })
	return g.Wait()
}

func (s *SafeUnsafe) Safe() []domain.Ingredient   { return s.safe.snapshot() }
func (s *SafeUnsafe) Unsafe() []domain.Ingredient { return s.unsafe.snapshot() }
func (s *SafeUnsafe) Loading() bool               { return s.safe.isLoading() || s.unsafe.isLoading() }

// Err returns the last error of either list, safe first.
func (s *SafeUnsafe) Err() error {
	if err := s.safe.lastErr(); err != nil {
		return err
	}
	return s.unsafe.lastErr()
}

func (s *SafeUnsafe) Close() {
	s.safe.close()
	s.unsafe.close()
}

// MarkSafe marks an ingredient safe, moving it out of the unsafe list.
func (s *SafeUnsafe) MarkSafe(ctx context.Context, ingredientID int64) error {
	return s.move(ctx, ingredientID, s.gw.MarkSafe, s.unsafe, s.safe)
}

// MarkUnsafe marks an ingredient unsafe, moving it out of the safe list.
func (s *SafeUnsafe) MarkUnsafe(ctx context.Context, ingredientID int64) error {
	return s.move(ctx, ingredientID, s.gw.MarkUnsafe, s.safe, s.unsafe)
}

// UnmarkSafe removes an ingredient from the safe list.
func (s *SafeUnsafe) UnmarkSafe(ctx context.Context, ingredientID int64) error {
	return s.safe.mutate(ctx, "remove",
		func(ctx context.Context, _ int64) error {
			return s.gw.UnmarkSafe(ctx, ingredientID).Failure()
		},
		func(items []domain.Ingredient, _ int64) []domain.Ingredient {
			return without(items, ingredientID)
		})
}

// UnmarkUnsafe removes an ingredient from the unsafe list.
func (s *SafeUnsafe) UnmarkUnsafe(ctx context.Context, ingredientID int64) error {
	return s.unsafe.mutate(ctx, "remove",
		func(ctx context.Context, _ int64) error {
			return s.gw.UnmarkUnsafe(ctx, ingredientID).Failure()
		},
		func(items []domain.Ingredient, _ int64) []domain.Ingredient {
			return without(items, ingredientID)
		})
}

// move calls mark and then takes the ingredient out of from and appends it to
// to. An ingredient found in neither list is appended as an id-only
// placeholder; one already in to is not duplicated.
func (s *SafeUnsafe) move(ctx context.Context, ingredientID int64, mark func(context.Context, int64) domain.Result[ports.Ack], from, to *collection[domain.Ingredient]) error {
	known := domain.Ingredient{ID: ingredientID}
	for _, ing := range from.snapshot() {
		if ing.ID == ingredientID {
			known = ing
			break
		}
	}

	err := to.mutate(ctx, "mark",
		func(ctx context.Context, _ int64) error {
			return mark(ctx, ingredientID).Failure()
		},
		func(items []domain.Ingredient, _ int64) []domain.Ingredient {
			for _, ing := range items {
				if ing.ID == ingredientID {
					return items
				}
			}
			return appendCopy(items, known)
		})
	if err != nil {
		return err
	}

	from.mu.Lock()
	if !from.closed {
		from.items = without(from.items, ingredientID)
	}
	from.mu.Unlock()
	return nil
}

func without(items []domain.Ingredient, id int64) []domain.Ingredient {
	return filterOut(items, func(ing domain.Ingredient) bool { return ing.ID == id })
}
