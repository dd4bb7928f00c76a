package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/store"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]*catalog.Episode{
		{ID: 1, Title: "Ruido y señal", Description: "Sobre el silencio", Category: "Creatividad"},
		{ID: 2, Title: "Flujo profundo", Description: "Trabajo sin ruido", Category: "Productividad"},
		{ID: 3, Title: "Máquinas que escuchan", Description: "Audio y modelos", Category: "Tecnología"},
	})
	require.NoError(t, err)
	return c
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestEpisodesViewShowsFullCatalogByDefault(t *testing.T) {
	v := NewEpisodesView(testCatalog(t), store.New())
	assert.Len(t, v.results, 3)
	assert.Equal(t, catalog.CategoryAll, v.Category())
}

func TestEpisodesViewSearchNarrowsResults(t *testing.T) {
	v := NewEpisodesView(testCatalog(t), store.New())
	for _, r := range "ruido" {
		v.search.InsertChar(r)
	}
	v.Refresh()

	require.Len(t, v.results, 2)
	ids := []int{v.results[0].ID, v.results[1].ID}
	assert.ElementsMatch(t, []int{1, 2}, ids)
}

func TestEpisodesViewCategoryCycling(t *testing.T) {
	v := NewEpisodesView(testCatalog(t), store.New())

	v.CycleCategory(1)
	assert.Equal(t, "Creatividad", v.Category())
	assert.Len(t, v.results, 1)

	v.CycleCategory(-1)
	assert.Equal(t, catalog.CategoryAll, v.Category())
	assert.Len(t, v.results, 3)

	// Wraps around in both directions.
	v.CycleCategory(-1)
	assert.Equal(t, "Tecnología", v.Category())
}

func TestEpisodesViewSelectionClampsToResults(t *testing.T) {
	v := NewEpisodesView(testCatalog(t), store.New())
	v.HandleKey(key('j'))
	v.HandleKey(key('j'))
	assert.Equal(t, 3, v.Selected().ID)

	// Narrowing the result set pulls the selection back in range.
	for _, r := range "flujo" {
		v.search.InsertChar(r)
	}
	v.Refresh()
	require.Len(t, v.results, 1)
	assert.Equal(t, 2, v.Selected().ID)
}

func TestEpisodesViewClearSearch(t *testing.T) {
	v := NewEpisodesView(testCatalog(t), store.New())
	for _, r := range "flujo" {
		v.search.InsertChar(r)
	}
	v.Refresh()
	require.Len(t, v.results, 1)

	assert.True(t, v.HandleKey(key('x')))
	assert.Len(t, v.results, 3)
	assert.False(t, v.search.Active())
}

func TestEpisodesViewOpenAndPlayCallbacks(t *testing.T) {
	v := NewEpisodesView(testCatalog(t), store.New())
	var opened int
	var played *catalog.Episode
	v.OnOpen = func(id int) { opened = id }
	v.OnPlay = func(ep *catalog.Episode) { played = ep }

	v.HandleKey(key('j'))
	v.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, 2, opened)

	v.HandleKey(key('p'))
	require.NotNil(t, played)
	assert.Equal(t, 2, played.ID)
}
