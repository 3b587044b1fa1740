package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrNoEntry is returned by entry-scoped operations when no entry is selected.
var ErrNoEntry = errors.New("no entry selected")

// DayLayout is the calendar-day format used for entry dates.
const DayLayout = "2006-01-02"

// Entry is one diary day.
type Entry struct {
	ID          int64        `json:"id"`
	Date        string       `json:"date"`
	Symptomatic bool         `json:"symptomatic"`
	Supplements []Supplement `json:"supplements,omitempty"`
}

// Day returns the calendar day of the entry in DayLayout, or "" when the
// backend sent a date that cannot be read.
func (e Entry) Day() string {
	t, err := ParseDate(e.Date)
	if err != nil {
		return ""
	}
	return t.Format(DayLayout)
}

// ParseDate accepts either a bare calendar day or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Symptom struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Supplement struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EntryIngredient links an ingredient to an entry with free-text notes.
type EntryIngredient struct {
	EntryID      int64  `json:"entryId"`
	IngredientID int64  `json:"ingredientId"`
	Notes        string `json:"notes"`
}

// EntrySymptom links a symptom to an entry. SymptomTitle is filled by the
// backend on reads.
type EntrySymptom struct {
	EntryID      int64  `json:"entryId"`
	SymptomID    int64  `json:"symptomId"`
	Notes        string `json:"notes"`
	SymptomTitle string `json:"symptomTitle,omitempty"`
}

type EntrySupplement struct {
	EntryID         int64  `json:"entryId"`
	SupplementID    int64  `json:"supplementId"`
	SupplementName  string `json:"supplementName,omitempty"`
	SupplementTitle string `json:"supplementTitle,omitempty"`
}

// Meal is a named, reusable group of ingredients.
type Meal struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
}

// EntryMeal links a meal to an entry.
type EntryMeal struct {
	EntryID     int64        `json:"entryId"`
	MealID      int64        `json:"mealId"`
	MealName    string       `json:"mealName,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
}
