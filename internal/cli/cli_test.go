package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/internal/core/service"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend"
	"github.com/andypowell00/food-notes-ui/internal/infrastructure/backend/backendtest"
)

func newTestApp(out *bytes.Buffer) *App {
	return &App{
		Out: out,
		Gateway: func(baseURL, apiKey string) ports.DiaryGateway {
			return backend.New(backend.Config{BaseURL: baseURL, APIKey: apiKey}, zerolog.Nop())
		},
		ReadPassword: func(int) ([]byte, error) { return nil, errors.New("no terminal") },
		Log:          zerolog.Nop(),
	}
}

func verifies(t *testing.T, encoded, password string) bool {
	t.Helper()
	acc, err := service.NewAccount("admin", encoded)
	require.NoError(t, err)
	return service.NewCredentialVerifier(acc, zerolog.Nop()).Verify("admin", password)
}

// ---- hash-password ----

func TestHashPassword_FromFlag(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)

	err := app.Execute(context.Background(), []string{"hash-password", "--password", "s3cret", "--cost", "4"})

	require.NoError(t, err)
	encoded := strings.TrimSpace(out.String())
	assert.True(t, verifies(t, encoded, "s3cret"))
	assert.False(t, verifies(t, encoded, "other"))
}

func TestHashPassword_Prompted(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)
	app.ReadPassword = func(int) ([]byte, error) { return []byte("typed\n"), nil }

	err := app.Execute(context.Background(), []string{"hash-password", "--cost", "4"})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, verifies(t, lines[len(lines)-1], "typed"))
}

func TestHashPassword_RejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)
	app.ReadPassword = func(int) ([]byte, error) { return []byte(""), nil }

	require.Error(t, app.Execute(context.Background(), []string{"hash-password", "--cost", "4"}))
	require.Error(t, app.Execute(context.Background(), []string{"hash-password", "--password", "x", "--cost", "99"}))
	require.Error(t, app.Execute(context.Background(), []string{"hash-password", "extra"}))
}

// ---- day / marks ----

func TestDay_PrintsEntryItems(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	ctx := context.Background()
	gw := backend.New(backend.Config{BaseURL: fake.URL, APIKey: "k"}, zerolog.Nop())

	entry := gw.CreateEntry(ctx, ports.NewEntry{Date: "2024-01-15", Symptomatic: true}).Value()
	eggs := gw.CreateIngredient(ctx, "eggs").Value()
	bloating := gw.CreateSymptom(ctx, "bloating").Value()
	require.False(t, gw.AddEntryIngredient(ctx, domain.EntryIngredient{EntryID: entry.ID, IngredientID: eggs.ID, Notes: "scrambled"}).Failed())
	require.False(t, gw.AddEntrySymptom(ctx, domain.EntrySymptom{EntryID: entry.ID, SymptomID: bloating.ID, Notes: "mild"}).Failed())
	lunch := gw.CreateMeal(ctx, ports.NewMeal{Name: "lunch", IngredientIDs: []int64{eggs.ID}}).Value()
	require.False(t, gw.AddEntryMeal(ctx, entry.ID, lunch.ID).Failed())

	var out bytes.Buffer
	app := newTestApp(&out)
	err := app.Execute(ctx, []string{"day", "2024-01-15", "--api-url", fake.URL, "--api-key", "k"})

	require.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, "2024-01-15")
	assert.Contains(t, got, "symptomatic: yes")
	assert.Contains(t, got, "eggs")
	assert.Contains(t, got, "scrambled")
	assert.Contains(t, got, "bloating")
	assert.Contains(t, got, "mild")
	assert.Contains(t, got, "lunch")
}

func TestDay_NoEntry(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()

	var out bytes.Buffer
	app := newTestApp(&out)
	err := app.Execute(context.Background(), []string{"day", "2024-02-01", "--api-url", fake.URL, "--api-key", "k"})

	require.NoError(t, err)
	assert.Equal(t, "No entry for 2024-02-01.\n", out.String())
}

func TestDay_BadDate(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(&out)

	err := app.Execute(context.Background(), []string{"day", "15/01/2024", "--api-url", "http://unused"})

	require.ErrorContains(t, err, "bad day")
}

func TestDay_BackendRejectsKey(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()

	var out bytes.Buffer
	app := newTestApp(&out)
	err := app.Execute(context.Background(), []string{"day", "2024-01-15", "--api-url", fake.URL, "--api-key", "wrong"})

	require.ErrorContains(t, err, "status: 401")
}

func TestMarks_ListsBothSides(t *testing.T) {
	fake := backendtest.New("k")
	defer fake.Close()
	ctx := context.Background()
	gw := backend.New(backend.Config{BaseURL: fake.URL, APIKey: "k"}, zerolog.Nop())
	rice := gw.CreateIngredient(ctx, "rice").Value()
	milk := gw.CreateIngredient(ctx, "milk").Value()
	require.False(t, gw.MarkSafe(ctx, rice.ID).Failed())
	require.False(t, gw.MarkUnsafe(ctx, milk.ID).Failed())

	var out bytes.Buffer
	app := newTestApp(&out)
	require.NoError(t, app.Execute(ctx, []string{"marks", "--api-url", fake.URL, "--api-key", "k"}))

	assert.Equal(t, "safe:\n  rice\nunsafe:\n  milk\n", out.String())
}
