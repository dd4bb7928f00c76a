package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]*Episode{
		{ID: 1, Title: "Rutinas que funcionan", Description: "productividad sin culpa", Category: "Productividad"},
		{ID: 2, Title: "El terminal como lienzo", Description: "interfaces de texto", Category: "Tecnología"},
		{ID: 3, Title: "Creatividad bajo restricciones", Description: "menos es más", Category: "Creatividad"},
	})
	require.NoError(t, err)
	return c
}

func TestFilter(t *testing.T) {
	c := filterCatalog(t)

	tests := []struct {
		name     string
		term     string
		category string
		wantIDs  []int
	}{
		{"all sentinel with empty term returns full list in order", "", CategoryAll, []int{1, 2, 3}},
		{"empty category behaves like the sentinel", "", "", []int{1, 2, 3}},
		{"category only", "", "Tecnología", []int{2}},
		{"term matches title", "terminal", CategoryAll, []int{2}},
		{"term matches description", "culpa", CategoryAll, []int{1}},
		{"term is case-insensitive", "RUTINAS", CategoryAll, []int{1}},
		{"term is trimmed", "  lienzo  ", CategoryAll, []int{2}},
		{"term and category combine", "creatividad", "Creatividad", []int{3}},
		{"no match yields empty set", "astrofísica", CategoryAll, nil},
		{"no match is independent of category", "astrofísica", "Tecnología", nil},
		{"category excludes matching term", "terminal", "Creatividad", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, ep := range c.Filter(tt.term, tt.category) {
				got = append(got, ep.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}
