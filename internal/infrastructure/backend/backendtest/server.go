// Package backendtest provides an in-memory stand-in for the remote diary
// API, for use in tests.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

type pair struct{ a, b int64 }

// Server is a fake backend. All state lives in memory behind one mutex.
type Server struct {
	*httptest.Server
	APIKey string

	mu               sync.Mutex
	nextID           int64
	entries          map[int64]domain.Entry
	ingredients      map[int64]domain.Ingredient
	symptoms         map[int64]domain.Symptom
	supplements      map[int64]domain.Supplement
	meals            map[int64]domain.Meal
	entryIngredients map[pair]domain.EntryIngredient
	entrySymptoms    map[pair]domain.EntrySymptom
	entrySupplements map[pair]domain.EntrySupplement
	entryMeals       map[pair]domain.EntryMeal
	safe             map[int64]struct{}
	unsafe           map[int64]struct{}
	requests         []string

	// deleteBody, when set, is sent with a 200 instead of a bare 204 on
	// successful deletes.
	deleteBody string
	// overlapMarks lets an ingredient sit on both mark lists.
	overlapMarks bool
}

// New starts a fake backend that accepts apiKey.
func New(apiKey string) *Server {
	s := &Server{
		APIKey:           apiKey,
		entries:          make(map[int64]domain.Entry),
		ingredients:      make(map[int64]domain.Ingredient),
		symptoms:         make(map[int64]domain.Symptom),
		supplements:      make(map[int64]domain.Supplement),
		meals:            make(map[int64]domain.Meal),
		entryIngredients: make(map[pair]domain.EntryIngredient),
		entrySymptoms:    make(map[pair]domain.EntrySymptom),
		entrySupplements: make(map[pair]domain.EntrySupplement),
		entryMeals:       make(map[pair]domain.EntryMeal),
		safe:             make(map[int64]struct{}),
		unsafe:           make(map[int64]struct{}),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// SetDeleteBody makes successful deletes answer 200 with body as JSON.
func (s *Server) SetDeleteBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteBody = body
}

// AllowOverlappingMarks stops marking from clearing the opposite list.
func (s *Server) AllowOverlappingMarks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlapMarks = true
}

// deleted confirms a delete. Callers hold s.mu.
func (s *Server) deleted(c echo.Context) error {
	if s.deleteBody != "" {
		return c.JSONBlob(http.StatusOK, []byte(s.deleteBody))
	}
	return c.NoContent(http.StatusNoContent)
}

// Requests returns "METHOD path" for every request received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(s.record, s.requireKey)

	e.GET("/entries", s.listEntries)
	e.POST("/entries", s.createEntry)

	e.GET("/ingredients", s.listIngredients)
	e.POST("/ingredients", s.createIngredient)
	e.GET("/symptoms", s.listSymptoms)
	e.POST("/symptoms", s.createSymptom)
	e.GET("/supplements", s.listSupplements)
	e.POST("/supplements", s.createSupplement)
	e.GET("/supplements/:id", s.getSupplement)
	e.DELETE("/supplements/:id", s.deleteSupplement)

	e.GET("/entry-ingredients/by-entry/:entryId", s.listEntryIngredients)
	e.POST("/entry-ingredients", s.addEntryIngredient)
	e.PUT("/entry-ingredients/:entryId/:id", s.updateEntryIngredient)
	e.DELETE("/entry-ingredients/:entryId/:id", s.removeEntryIngredient)

	e.GET("/entry-symptoms/by-entry/:entryId", s.listEntrySymptoms)
	e.POST("/entry-symptoms", s.addEntrySymptom)
	e.PUT("/entry-symptoms/:entryId/:id", s.updateEntrySymptom)
	e.DELETE("/entry-symptoms/:entryId/:id", s.removeEntrySymptom)

	e.GET("/entry-supplements/by-entry/:entryId", s.listEntrySupplements)
	e.POST("/entry-supplements", s.addEntrySupplement)
	e.DELETE("/entry-supplements/:entryId/:id", s.removeEntrySupplement)

	e.GET("/safe-ingredients", s.listMarks(true))
	e.POST("/safe-ingredients", s.mark(true))
	e.DELETE("/safe-ingredients/:id", s.unmark(true))
	e.GET("/unsafe-ingredients", s.listMarks(false))
	e.POST("/unsafe-ingredients", s.mark(false))
	e.DELETE("/unsafe-ingredients/:id", s.unmark(false))

	e.GET("/meals", s.listMeals)
	e.POST("/meals", s.createMeal)
	e.POST("/meals/:id/ingredients", s.addMealIngredient)
	e.DELETE("/meals/:id/ingredients/:ingredientId", s.removeMealIngredient)

	e.GET("/entry-meals/by-entry/:entryId", s.listEntryMeals)
	e.POST("/entry-meals", s.addEntryMeal)
	e.DELETE("/entry-meals/:entryId/:id", s.removeEntryMeal)
	return e
}

// ── Middleware ────────────────────────────────────────────────────────────────

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.requests = append(s.requests, c.Request().Method+" "+c.Request().URL.Path)
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) requireKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "ApiKey "+s.APIKey {
			return c.String(http.StatusUnauthorized, "invalid api key")
		}
		return next(c)
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func param(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func badRequest(c echo.Context, msg string) error {
	return c.String(http.StatusBadRequest, msg)
}

func notFound(c echo.Context) error {
	return c.String(http.StatusNotFound, "not found")
}

func sortedValues[K comparable, V any](m map[K]V, less func(a, b V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ── Entries ───────────────────────────────────────────────────────────────────

func (s *Server) listEntries(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedValues(s.entries, func(a, b domain.Entry) bool { return a.ID < b.ID }))
}

func (s *Server) createEntry(c echo.Context) error {
	var in domain.Entry
	if err := c.Bind(&in); err != nil || in.Date == "" {
		return badRequest(c, "date is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	s.entries[in.ID] = in
	return c.JSON(http.StatusCreated, in)
}

// ── Catalogs ──────────────────────────────────────────────────────────────────

func (s *Server) listIngredients(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedValues(s.ingredients, func(a, b domain.Ingredient) bool { return a.ID < b.ID }))
}

func (s *Server) createIngredient(c echo.Context) error {
	var in domain.Ingredient
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return badRequest(c, "name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	s.ingredients[in.ID] = in
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) listSymptoms(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedValues(s.symptoms, func(a, b domain.Symptom) bool { return a.ID < b.ID }))
}

func (s *Server) createSymptom(c echo.Context) error {
	var in domain.Symptom
	if err := c.Bind(&in); err != nil || in.Title == "" {
		return badRequest(c, "title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	s.symptoms[in.ID] = in
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) listSupplements(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedValues(s.supplements, func(a, b domain.Supplement) bool { return a.ID < b.ID }))
}

func (s *Server) createSupplement(c echo.Context) error {
	var in domain.Supplement
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return badRequest(c, "name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	s.supplements[in.ID] = in
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) getSupplement(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.supplements[id]
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, sup)
}

func (s *Server) deleteSupplement(c echo.Context) error {
	id, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.supplements[id]; !ok {
		return notFound(c)
	}
	delete(s.supplements, id)
	return s.deleted(c)
}

// ── Entry ingredients ─────────────────────────────────────────────────────────

func (s *Server) listEntryIngredients(c echo.Context) error {
	entryID, err := param(c, "entryId")
	if err != nil {
		return badRequest(c, "bad entry id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.EntryIngredient{}
	for k, v := range s.entryIngredients {
		if k.a == entryID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IngredientID < out[j].IngredientID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) addEntryIngredient(c echo.Context) error {
	var in domain.EntryIngredient
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[in.EntryID]; !ok {
		return notFound(c)
	}
	k := pair{in.EntryID, in.IngredientID}
	if _, dup := s.entryIngredients[k]; dup {
		return c.String(http.StatusConflict, "already linked")
	}
	s.entryIngredients[k] = in
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) updateEntryIngredient(c echo.Context) error {
	k, err := pairParams(c)
	if err != nil {
		return badRequest(c, "bad ids")
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entryIngredients[k]
	if !ok {
		return notFound(c)
	}
	cur.Notes = body.Notes
	s.entryIngredients[k] = cur
	return c.JSON(http.StatusOK, cur)
}

func (s *Server) removeEntryIngredient(c echo.Context) error {
	k, err := pairParams(c)
	if err != nil {
		return badRequest(c, "bad ids")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entryIngredients[k]; !ok {
		return notFound(c)
	}
	delete(s.entryIngredients, k)
	return s.deleted(c)
}

func pairParams(c echo.Context) (pair, error) {
	a, err := param(c, "entryId")
	if err != nil {
		return pair{}, err
	}
	b, err := param(c, "id")
	if err != nil {
		return pair{}, err
	}
	return pair{a, b}, nil
}

// ── Entry symptoms ────────────────────────────────────────────────────────────

func (s *Server) listEntrySymptoms(c echo.Context) error {
	entryID, err := param(c, "entryId")
	if err != nil {
		return badRequest(c, "bad entry id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.EntrySymptom{}
	for k, v := range s.entrySymptoms {
		if k.a == entryID {
			v.SymptomTitle = s.symptoms[v.SymptomID].Title
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SymptomID < out[j].SymptomID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) addEntrySymptom(c echo.Context) error {
	var in domain.EntrySymptom
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[in.EntryID]; !ok {
		return notFound(c)
	}
	k := pair{in.EntryID, in.SymptomID}
	if _, dup := s.entrySymptoms[k]; dup {
		return c.String(http.StatusConflict, "already linked")
	}
	s.entrySymptoms[k] = in
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) updateEntrySymptom(c echo.Context) error {
	k, err := pairParams(c)
	if err != nil {
		return badRequest(c, "bad ids")
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entrySymptoms[k]
	if !ok {
		return notFound(c)
	}
	cur.Notes = body.Notes
	s.entrySymptoms[k] = cur
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) removeEntrySymptom(c echo.Context) error {
	k, err := pairParams(c)
	if err != nil {
		return badRequest(c, "bad ids")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entrySymptoms[k]; !ok {
		return notFound(c)
	}
	delete(s.entrySymptoms, k)
	return s.deleted(c)
}

// ── Entry supplements ─────────────────────────────────────────────────────────

func (s *Server) listEntrySupplements(c echo.Context) error {
	entryID, err := param(c, "entryId")
	if err != nil {
		return badRequest(c, "bad entry id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.EntrySupplement{}
	for k, v := range s.entrySupplements {
		if k.a == entryID {
			v.SupplementName = s.supplements[v.SupplementID].Name
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SupplementID < out[j].SupplementID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) addEntrySupplement(c echo.Context) error {
	var in domain.EntrySupplement
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[in.EntryID]; !ok {
		return notFound(c)
	}
	s.entrySupplements[pair{in.EntryID, in.SupplementID}] = in
	return c.NoContent(http.StatusCreated)
}

func (s *Server) removeEntrySupplement(c echo.Context) error {
	k, err := pairParams(c)
	if err != nil {
		return badRequest(c, "bad ids")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entrySupplements[k]; !ok {
		return notFound(c)
	}
	delete(s.entrySupplements, k)
	return s.deleted(c)
}

// ── Safe / unsafe ─────────────────────────────────────────────────────────────

// listMarks answers the safe list in the nested form and the unsafe list in
// the flat form, so clients see both shapes.
func (s *Server) listMarks(safe bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		set := s.unsafe
		if safe {
			set = s.safe
		}
		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		if !safe {
			out := make([]domain.Ingredient, 0, len(ids))
			for _, id := range ids {
				out = append(out, s.ingredients[id])
			}
			return c.JSON(http.StatusOK, out)
		}

		type nested struct {
			ID           int64             `json:"id"`
			IngredientID int64             `json:"ingredientId"`
			Ingredient   domain.Ingredient `json:"ingredient"`
		}
		out := make([]nested, 0, len(ids))
		for i, id := range ids {
			out = append(out, nested{ID: int64(i + 1), IngredientID: id, Ingredient: s.ingredients[id]})
		}
		return c.JSON(http.StatusOK, out)
	}
}

func (s *Server) mark(safe bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body struct {
			IngredientID int64 `json:"ingredientId"`
		}
		if err := c.Bind(&body); err != nil {
			return badRequest(c, "bad body")
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.ingredients[body.IngredientID]; !ok {
			return notFound(c)
		}
		if safe {
			s.safe[body.IngredientID] = struct{}{}
			if !s.overlapMarks {
				delete(s.unsafe, body.IngredientID)
			}
		} else {
			s.unsafe[body.IngredientID] = struct{}{}
			if !s.overlapMarks {
				delete(s.safe, body.IngredientID)
			}
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (s *Server) unmark(safe bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := param(c, "id")
		if err != nil {
			return badRequest(c, "bad id")
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		set := s.unsafe
		if safe {
			set = s.safe
		}
		if _, ok := set[id]; !ok {
			return notFound(c)
		}
		delete(set, id)
		return c.NoContent(http.StatusNoContent)
	}
}

// ── Meals ─────────────────────────────────────────────────────────────────────

func (s *Server) listMeals(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedValues(s.meals, func(a, b domain.Meal) bool { return a.ID < b.ID }))
}

func (s *Server) createMeal(c echo.Context) error {
	var body struct {
		Name          string  `json:"name"`
		IngredientIDs []int64 `json:"ingredientIds"`
	}
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return badRequest(c, "name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := domain.Meal{ID: s.id(), Name: body.Name, Ingredients: []domain.Ingredient{}}
	for _, id := range body.IngredientIDs {
		if ing, ok := s.ingredients[id]; ok {
			m.Ingredients = append(m.Ingredients, ing)
		}
	}
	s.meals[m.ID] = m
	return c.JSON(http.StatusCreated, m)
}

func (s *Server) addMealIngredient(c echo.Context) error {
	mealID, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	var body struct {
		IngredientID int64 `json:"ingredientId"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meals[mealID]
	ing, ingOK := s.ingredients[body.IngredientID]
	if !ok || !ingOK {
		return notFound(c)
	}
	m.Ingredients = append(m.Ingredients, ing)
	s.meals[mealID] = m
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) removeMealIngredient(c echo.Context) error {
	mealID, err := param(c, "id")
	if err != nil {
		return badRequest(c, "bad id")
	}
	ingID, err := param(c, "ingredientId")
	if err != nil {
		return badRequest(c, "bad ingredient id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meals[mealID]
	if !ok {
		return notFound(c)
	}
	kept := m.Ingredients[:0]
	for _, ing := range m.Ingredients {
		if ing.ID != ingID {
			kept = append(kept, ing)
		}
	}
	m.Ingredients = kept
	s.meals[mealID] = m
	return s.deleted(c)
}

// ── Entry meals ───────────────────────────────────────────────────────────────

func (s *Server) listEntryMeals(c echo.Context) error {
	entryID, err := param(c, "entryId")
	if err != nil {
		return badRequest(c, "bad entry id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.EntryMeal{}
	for k, v := range s.entryMeals {
		if k.a == entryID {
			m := s.meals[v.MealID]
			v.MealName, v.Ingredients = m.Name, m.Ingredients
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MealID < out[j].MealID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) addEntryMeal(c echo.Context) error {
	var in domain.EntryMeal
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "bad body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[in.EntryID]; !ok {
		return notFound(c)
	}
	if _, ok := s.meals[in.MealID]; !ok {
		return notFound(c)
	}
	s.entryMeals[pair{in.EntryID, in.MealID}] = in
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) removeEntryMeal(c echo.Context) error {
	k, err := pairParams(c)
	if err != nil {
		return badRequest(c, "bad ids")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entryMeals[k]; !ok {
		return notFound(c)
	}
	delete(s.entryMeals, k)
	return s.deleted(c)
}
