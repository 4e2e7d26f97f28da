package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemCustomizationLookup(t *testing.T) {
	item := MenuItem{
		ID: "item-1",
		Customizations: []Customization{
			{
				ID: "size", Name: "Size", MaxChoices: 1,
				Options: []CustomizationOption{
					{ID: "small", Name: "Small"},
					{ID: "large", Name: "Large", Price: 4},
				},
			},
		},
	}

	group, ok := item.CustomizationByID("size")
	require.True(t, ok)
	assert.Equal(t, "Size", group.Name)

	_, ok = item.CustomizationByID("missing")
	assert.False(t, ok)

	opt, ok := group.Option("large")
	require.True(t, ok)
	assert.InDelta(t, 4.0, opt.Price, 1e-9)

	_, ok = group.Option("missing")
	assert.False(t, ok)
}
