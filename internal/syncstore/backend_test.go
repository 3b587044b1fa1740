package syncstore_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend/backendtest"
	"github.com/andypowell00/food-notes-ui/internal/syncstore"
)

func newGateway(t *testing.T) (*backend.Client, *backendtest.Server) {
	t.Helper()
	fake := backendtest.New("k")
	t.Cleanup(fake.Close)
	return backend.New(backend.Config{BaseURL: fake.URL, APIKey: "k"}, zerolog.Nop()), fake
}

func TestStores_EntrySymptomRoundTrip(t *testing.T) {
	gw, _ := newGateway(t)
	ctx := context.Background()

	entry := gw.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15"})
	require.False(t, entry.Failed())
	ings := syncstore.NewIngredients(gw)
	require.NoError(t, ings.Load(ctx))
	_, err := ings.Add(ctx, "eggs")
	require.NoError(t, err)
	syms := syncstore.NewSymptoms(gw)
	bloating, err := syms.Add(ctx, "bloating")
	require.NoError(t, err)

	s := syncstore.NewEntrySymptoms(gw)
	require.NoError(t, s.SetEntry(ctx, entry.Value().ID))
	require.Empty(t, s.Items())

	require.NoError(t, s.Add(ctx, bloating.ID, "mild"))
	require.Len(t, s.Items(), 1)

	require.NoError(t, s.Reload(ctx))
	got := s.Items()
	require.Len(t, got, 1)
	assert.Equal(t, "mild", got[0].Notes)
	assert.Equal(t, "bloating", got[0].SymptomTitle)

	require.Len(t, ings.Items(), 1)
}

func TestStores_RemoveTwiceKeepsItemsAndReportsClientError(t *testing.T) {
	gw, _ := newGateway(t)
	ctx := context.Background()

	sups := syncstore.NewSupplements(gw)
	sup, err := sups.Add(ctx, "Vitamin D")
	require.NoError(t, err)
	require.Len(t, sups.Items(), 1)

	require.NoError(t, sups.Delete(ctx, sup.ID))
	require.Empty(t, sups.Items())

	err = sups.Delete(ctx, sup.ID)
	var gerr *domain.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.True(t, gerr.IsClientError())
	assert.Empty(t, sups.Items())
}

func TestStores_MarkUnsafeWhileSafe(t *testing.T) {
	gw, _ := newGateway(t)
	ctx := context.Background()

	eggs := gw.CreateIngredient(ctx, "eggs").Value()
	require.False(t, gw.MarkSafe(ctx, eggs.ID).Failed())

	marks := syncstore.NewSafeUnsafe(gw)
	require.NoError(t, marks.Load(ctx))
	require.Equal(t, []domain.Ingredient{eggs}, marks.Safe())

	require.NoError(t, marks.MarkUnsafe(ctx, eggs.ID))
	assert.Empty(t, marks.Safe())
	assert.Equal(t, []domain.Ingredient{eggs}, marks.Unsafe())

	// The backend agrees after a fresh load.
	require.NoError(t, marks.Load(ctx))
	assert.Empty(t, marks.Safe())
	assert.Equal(t, []domain.Ingredient{eggs}, marks.Unsafe())
}

func TestStores_EntryMealsCarryExpandedIngredients(t *testing.T) {
	gw, _ := newGateway(t)
	ctx := context.Background()

	entry := gw.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15"}).Value()
	rice := gw.CreateIngredient(ctx, "rice").Value()
	meals := syncstore.NewMeals(gw)
	meal, err := meals.Add(ctx, "lunch", rice.ID)
	require.NoError(t, err)

	s := syncstore.NewEntryMeals(gw)
	require.NoError(t, s.SetEntry(ctx, entry.ID))
	require.NoError(t, s.Add(ctx, meal.ID))

	got := s.Items()
	require.Len(t, got, 1)
	assert.Equal(t, "lunch", got[0].MealName)
	assert.Equal(t, []domain.Ingredient{rice}, got[0].Ingredients)

	require.NoError(t, s.Remove(ctx, meal.ID))
	assert.Empty(t, s.Items())
}
