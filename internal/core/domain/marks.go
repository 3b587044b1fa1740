package domain

import (
	"encoding/json"
	"fmt"
)

// MarkShape records which wire form a safe/unsafe list arrived in.
type MarkShape int

const (
	ShapeEmpty MarkShape = iota
	// ShapeFlat is a plain Ingredient array.
	ShapeFlat
	// ShapeNested is an array of {id, ingredientId, ingredient} records.
	ShapeNested
)

func (s MarkShape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	default:
		return "empty"
	}
}

// nestedMark is one record of the nested form.
type nestedMark struct {
	ID           int64       `json:"id"`
	IngredientID int64       `json:"ingredientId"`
	Ingredient   *Ingredient `json:"ingredient"`
}

// IngredientMarks is a safe or unsafe ingredient list decoded from either
// backend shape. Ingredients is always the normalized flat form.
type IngredientMarks struct {
	Shape       MarkShape
	Ingredients []Ingredient
}

// UnmarshalJSON detects the shape from the first element. Nested lists are
// de-duplicated by ingredient id, keeping the first occurrence.
func (m *IngredientMarks) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("ingredient marks: %w", err)
	}
	if len(raw) == 0 {
		*m = IngredientMarks{Shape: ShapeEmpty, Ingredients: []Ingredient{}}
		return nil
	}

	var first map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &first); err != nil {
		return fmt.Errorf("ingredient marks: %w", err)
	}
	_, hasIngredient := first["ingredient"]
	_, hasIngredientID := first["ingredientId"]
	if !hasIngredient && !hasIngredientID {
		flat := make([]Ingredient, 0, len(raw))
		if err := json.Unmarshal(b, &flat); err != nil {
			return fmt.Errorf("ingredient marks: %w", err)
		}
		*m = IngredientMarks{Shape: ShapeFlat, Ingredients: flat}
		return nil
	}

	var nested []nestedMark
	if err := json.Unmarshal(b, &nested); err != nil {
		return fmt.Errorf("ingredient marks: %w", err)
	}
	seen := make(map[int64]struct{}, len(nested))
	out := make([]Ingredient, 0, len(nested))
	for _, n := range nested {
		ing := Ingredient{ID: n.IngredientID}
		if n.Ingredient != nil {
			ing = *n.Ingredient
			if ing.ID == 0 {
				ing.ID = n.IngredientID
			}
		}
		if _, dup := seen[ing.ID]; dup {
			continue
		}
		seen[ing.ID] = struct{}{}
		out = append(out, ing)
	}
	*m = IngredientMarks{Shape: ShapeNested, Ingredients: out}
	return nil
}

// MarshalJSON always emits the flat form.
func (m IngredientMarks) MarshalJSON() ([]byte, error) {
	if m.Ingredients == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.Ingredients)
}
