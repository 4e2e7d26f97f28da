package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionsByGroup(t *testing.T) {
	tests := []struct {
		name       string
		selections []SelectedCustomization
		want       map[string]map[string]bool
	}{
		{
			name:       "nil selections give empty map",
			selections: nil,
			want:       map[string]map[string]bool{},
		},
		{
			name: "single group single option",
			selections: []SelectedCustomization{
				{CustomizationID: "size-1", SelectedOptions: []SelectedOption{{OptionID: "large"}}},
			},
			want: map[string]map[string]bool{
				"size-1": {"large": true},
			},
		},
		{
			name: "multiple groups",
			selections: []SelectedCustomization{
				{CustomizationID: "size-1", SelectedOptions: []SelectedOption{{OptionID: "large"}}},
				{CustomizationID: "toppings", SelectedOptions: []SelectedOption{
					{OptionID: "mushrooms"},
					{OptionID: "olives"},
				}},
			},
			want: map[string]map[string]bool{
				"size-1":   {"large": true},
				"toppings": {"mushrooms": true, "olives": true},
			},
		},
		{
			name: "duplicate option ids collapse",
			selections: []SelectedCustomization{
				{CustomizationID: "toppings", SelectedOptions: []SelectedOption{{OptionID: "olives"}}},
				{CustomizationID: "toppings", SelectedOptions: []SelectedOption{{OptionID: "olives"}}},
			},
			want: map[string]map[string]bool{
				"toppings": {"olives": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectionsByGroup(tt.selections)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
