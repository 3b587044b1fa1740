package handler

import (
	"strings"
	"testing"
)

func TestValidator_DiaryTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  any
		want string
	}{
		{"day", &createEntryRequest{Date: "2024-01-15"}, ""},
		{"rfc3339", &createEntryRequest{Date: "2024-01-15T08:30:00Z"}, ""},
		{"bad date", &createEntryRequest{Date: "15/01/2024"}, `date must be a date (YYYY-MM-DD), got "15/01/2024"`},
		{"missing date", &createEntryRequest{}, "date is required"},
		{"blank name", &nameRequest{Name: "   "}, "name must not be blank"},
		{"zero id", &markRequest{}, "ingredientId is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.req)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}
