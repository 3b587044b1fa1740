package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend/backendtest"
)

func newClient(url string) *backend.Client {
	return backend.New(backend.Config{BaseURL: url, APIKey: "k"}, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Call semantics
// ---------------------------------------------------------------------------

func TestCall_InjectsHeadersAndBody(t *testing.T) {
	var gotAuth, gotType, gotCustom, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Trace")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"name":"eggs"}`))
	}))
	defer srv.Close()

	res := backend.Call[domain.Ingredient](context.Background(), newClient(srv.URL), backend.Request{
		Method: http.MethodPost,
		Path:   "/ingredients",
		Body:   map[string]string{"name": "eggs"},
		Header: http.Header{"X-Trace": []string{"abc"}},
	})

	require.Nil(t, res.Err)
	require.NotNil(t, res.Data)
	assert.Equal(t, domain.Ingredient{ID: 3, Name: "eggs"}, *res.Data)
	assert.Equal(t, "ApiKey k", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "abc", gotCustom)
	assert.JSONEq(t, `{"name":"eggs"}`, gotBody)
}

func TestCall_CallerHeadersWin(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res := backend.Call[ports.Ack](context.Background(), newClient(srv.URL), backend.Request{
		Method: http.MethodGet,
		Path:   "/x",
		Header: http.Header{"Content-Type": []string{"text/plain"}},
	})
	require.Nil(t, res.Err)
	assert.Equal(t, "text/plain", gotType)
}

func TestCall_EmptyResponsesAreSuccess(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"204", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }},
		{"200 empty body", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }},
		{"200 null", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("null")) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			res := backend.Call[[]domain.Ingredient](context.Background(), newClient(srv.URL), backend.Request{Method: http.MethodGet, Path: "/ingredients"})
			require.Nil(t, res.Err)
			assert.Nil(t, res.Data)
			assert.Empty(t, res.Value())
		})
	}
}

func TestCall_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "entry not found", http.StatusNotFound)
	}))
	defer srv.Close()

	res := backend.Call[domain.Entry](context.Background(), newClient(srv.URL), backend.Request{Method: http.MethodGet, Path: "/entries/9"})
	require.NotNil(t, res.Err)
	assert.Nil(t, res.Data)
	assert.Equal(t, domain.ErrKindHTTP, res.Err.Kind)
	assert.Equal(t, http.StatusNotFound, res.Err.Status)
	assert.True(t, res.Err.IsClientError())
	assert.Equal(t, "HTTP error! status: 404, message: entry not found", res.Err.Message)
}

func TestCall_ServerErrorIsNotClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res := backend.Call[domain.Entry](context.Background(), newClient(srv.URL), backend.Request{Method: http.MethodGet, Path: "/entries"})
	require.NotNil(t, res.Err)
	assert.False(t, res.Err.IsClientError())
	assert.Equal(t, http.StatusBadGateway, res.Err.Status)
}

func TestCall_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	res := backend.Call[domain.Entry](context.Background(), newClient(srv.URL), backend.Request{Method: http.MethodGet, Path: "/entries"})
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.ErrKindParse, res.Err.Kind)
	assert.Equal(t, "Invalid response format", res.Err.Message)
}

func TestCall_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := backend.Call[domain.Entry](context.Background(), newClient(url), backend.Request{Method: http.MethodGet, Path: "/entries"})
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.ErrKindTransport, res.Err.Kind)
	assert.Error(t, res.Failure())
}

func TestCall_UnencodableBody(t *testing.T) {
	res := backend.Call[domain.Entry](context.Background(), newClient("http://127.0.0.1:1"), backend.Request{
		Method: http.MethodPost,
		Path:   "/entries",
		Body:   map[string]any{"bad": make(chan int)},
	})
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.ErrKindRequest, res.Err.Kind)
}

func TestCall_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := backend.Call[[]domain.Entry](ctx, newClient(srv.URL), backend.Request{Method: http.MethodGet, Path: "/entries"})
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.ErrKindTransport, res.Err.Kind)
	assert.ErrorIs(t, res.Failure(), context.Canceled)
}

// ---------------------------------------------------------------------------
// Typed operations against the fake backend
// ---------------------------------------------------------------------------

func TestClient_IngredientRoundTrip(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := newClient(fake.URL)
	ctx := context.Background()

	created := c.CreateIngredient(ctx, "eggs")
	require.Nil(t, created.Err)

	list := c.ListIngredients(ctx)
	require.Nil(t, list.Err)
	count := 0
	for _, ing := range list.Value() {
		if ing.ID == created.Value().ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestClient_WrongAPIKey(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := backend.New(backend.Config{BaseURL: fake.URL, APIKey: "wrong"}, zerolog.Nop())

	res := c.ListEntries(context.Background())
	require.NotNil(t, res.Err)
	assert.Equal(t, http.StatusUnauthorized, res.Err.Status)
}

func TestClient_EntrySymptomScenario(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := newClient(fake.URL)
	ctx := context.Background()

	entry := c.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15", Symptomatic: true})
	require.Nil(t, entry.Err)
	eggs := c.CreateIngredient(ctx, "eggs")
	require.Nil(t, eggs.Err)
	bloating := c.CreateSymptom(ctx, "bloating")
	require.Nil(t, bloating.Err)

	entryID := entry.Value().ID
	require.Nil(t, c.AddEntryIngredient(ctx, domain.EntryIngredient{EntryID: entryID, IngredientID: eggs.Value().ID}).Err)
	require.Nil(t, c.AddEntrySymptom(ctx, domain.EntrySymptom{EntryID: entryID, SymptomID: bloating.Value().ID, Notes: "mild"}).Err)

	symptoms := c.ListEntrySymptoms(ctx, entryID)
	require.Nil(t, symptoms.Err)
	require.Len(t, symptoms.Value(), 1)
	assert.Equal(t, "mild", symptoms.Value()[0].Notes)
	assert.Equal(t, "bloating", symptoms.Value()[0].SymptomTitle)

	// The fake answers PUT with 204; the client fills in the record.
	updated := c.UpdateEntrySymptomNotes(ctx, entryID, bloating.Value().ID, "severe")
	require.Nil(t, updated.Err)
	assert.Equal(t, "severe", updated.Value().Notes)
	assert.Equal(t, entryID, updated.Value().EntryID)
}

func TestClient_RemoveTwiceIsClientError(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := newClient(fake.URL)
	ctx := context.Background()

	entry := c.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15"})
	ing := c.CreateIngredient(ctx, "milk")
	require.Nil(t, c.AddEntryIngredient(ctx, domain.EntryIngredient{EntryID: entry.Value().ID, IngredientID: ing.Value().ID}).Err)

	first := c.RemoveEntryIngredient(ctx, entry.Value().ID, ing.Value().ID)
	require.Nil(t, first.Err)
	assert.Nil(t, first.Data)

	second := c.RemoveEntryIngredient(ctx, entry.Value().ID, ing.Value().ID)
	require.NotNil(t, second.Err)
	assert.True(t, second.Err.IsClientError())
}

func TestClient_SafeAndUnsafeShapes(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := newClient(fake.URL)
	ctx := context.Background()

	a := c.CreateIngredient(ctx, "rice").Value()
	b := c.CreateIngredient(ctx, "wheat").Value()
	require.Nil(t, c.MarkSafe(ctx, a.ID).Err)
	require.Nil(t, c.MarkUnsafe(ctx, b.ID).Err)

	safe := c.ListSafeIngredients(ctx)
	require.Nil(t, safe.Err)
	assert.Equal(t, domain.ShapeNested, safe.Value().Shape)
	assert.Equal(t, []domain.Ingredient{a}, safe.Value().Ingredients)

	unsafe := c.ListUnsafeIngredients(ctx)
	require.Nil(t, unsafe.Err)
	assert.Equal(t, domain.ShapeFlat, unsafe.Value().Shape)
	assert.Equal(t, []domain.Ingredient{b}, unsafe.Value().Ingredients)

	require.Nil(t, c.UnmarkSafe(ctx, a.ID).Err)
	empty := c.ListSafeIngredients(ctx)
	require.Nil(t, empty.Err)
	assert.Equal(t, domain.ShapeEmpty, empty.Value().Shape)
}

func TestClient_MealsAndEntryMeals(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := newClient(fake.URL)
	ctx := context.Background()

	entry := c.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15"}).Value()
	oats := c.CreateIngredient(ctx, "oats").Value()
	meal := c.CreateMeal(ctx, ports.NewMeal{Name: "breakfast"})
	require.Nil(t, meal.Err)
	require.Nil(t, c.AddMealIngredient(ctx, meal.Value().ID, oats.ID).Err)
	require.Nil(t, c.AddEntryMeal(ctx, entry.ID, meal.Value().ID).Err)

	em := c.ListEntryMeals(ctx, entry.ID)
	require.Nil(t, em.Err)
	require.Len(t, em.Value(), 1)
	assert.Equal(t, "breakfast", em.Value()[0].MealName)
	assert.Equal(t, []domain.Ingredient{oats}, em.Value()[0].Ingredients)

	require.Nil(t, c.RemoveEntryMeal(ctx, entry.ID, meal.Value().ID).Err)
	assert.Empty(t, c.ListEntryMeals(ctx, entry.ID).Value())
}

func TestClient_AddEntrySupplementFillsEmptyResponse(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	c := newClient(fake.URL)
	ctx := context.Background()

	entry := c.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15"}).Value()
	sup := c.CreateSupplement(ctx, "magnesium").Value()

	res := c.AddEntrySupplement(ctx, entry.ID, sup.ID)
	require.Nil(t, res.Err)
	assert.Equal(t, domain.EntrySupplement{EntryID: entry.ID, SupplementID: sup.ID}, res.Value())

	raw, err := json.Marshal(c.ListEntrySupplements(ctx, entry.ID).Value())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"entryId":1,"supplementId":2,"supplementName":"magnesium"}]`, string(raw))
}

func TestClient_Ping(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	require.NoError(t, newClient(fake.URL).Ping(context.Background()))
	require.Error(t, newClient("http://127.0.0.1:1").Ping(context.Background()))
}
