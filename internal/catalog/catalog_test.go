package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEpisodes() []*Episode {
	return []*Episode{
		{ID: 1, Title: "Uno", Description: "primer episodio", Category: "Creatividad", Date: "2025-01-10"},
		{ID: 2, Title: "Dos", Description: "segundo episodio", Category: "Tecnología", Date: "2025-01-24"},
		{ID: 3, Title: "Tres", Description: "tercer episodio", Category: "Creatividad", Date: "2025-02-07"},
	}
}

func TestNewRejectsInvalidIDs(t *testing.T) {
	_, err := New([]*Episode{{ID: 0, Title: "sin id"}})
	assert.Error(t, err)

	_, err = New([]*Episode{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}})
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	c, err := New(testEpisodes())
	require.NoError(t, err)

	ep, ok := c.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Dos", ep.Title)

	_, ok = c.FindByID(4)
	assert.False(t, ok)

	_, ok = c.FindByID(-1)
	assert.False(t, ok)
}

func TestAdjacency(t *testing.T) {
	c, err := New(testEpisodes())
	require.NoError(t, err)

	// Middle episode has both neighbors.
	prev, ok := c.Previous(2)
	require.True(t, ok)
	assert.Equal(t, 1, prev.ID)
	next, ok := c.Next(2)
	require.True(t, ok)
	assert.Equal(t, 3, next.ID)

	// Edges.
	_, ok = c.Previous(1)
	assert.False(t, ok)
	_, ok = c.Next(3)
	assert.False(t, ok)
}

func TestLatest(t *testing.T) {
	c, err := New(testEpisodes())
	require.NoError(t, err)

	latest := c.Latest(2)
	require.Len(t, latest, 2)
	assert.Equal(t, 1, latest[0].ID)
	assert.Equal(t, 2, latest[1].ID)

	assert.Len(t, c.Latest(10), 3)
}

func TestCategories(t *testing.T) {
	c, err := New(testEpisodes())
	require.NoError(t, err)

	assert.Equal(t, []string{CategoryAll, "Creatividad", "Tecnología"}, c.Categories())
}

func TestLoadEmbeddedDataset(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.NotZero(t, c.Len())

	// Every bundled episode must be playable and navigable.
	for _, ep := range c.Episodes() {
		assert.Positive(t, ep.ID)
		assert.NotEmpty(t, ep.Title)
		assert.NotEmpty(t, ep.AudioURL)
		assert.False(t, ep.PublishedAt().IsZero(), "episode %d has a malformed date", ep.ID)
	}
}
