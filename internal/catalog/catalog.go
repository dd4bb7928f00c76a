package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed episodes.json
var embeddedDataset []byte

// Catalog is the read-only, ordered episode list plus an id index. It is
// built once at startup and shared by reference for the process lifetime.
type Catalog struct {
	episodes []*Episode
	byID     map[int]*Episode
}

// Load builds a catalog from the JSON dataset at path. An empty path loads
// the dataset bundled with the binary.
func Load(path string) (*Catalog, error) {
	data := embeddedDataset
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
	}

	var episodes []*Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	return New(episodes)
}

// New builds a catalog from an already-decoded episode list, preserving the
// list's order.
func New(episodes []*Episode) (*Catalog, error) {
	byID := make(map[int]*Episode, len(episodes))
	for _, ep := range episodes {
		if ep.ID <= 0 {
			return nil, fmt.Errorf("episode %q has invalid id %d", ep.Title, ep.ID)
		}
		if _, exists := byID[ep.ID]; exists {
			return nil, fmt.Errorf("duplicate episode id %d", ep.ID)
		}
		byID[ep.ID] = ep
	}

	return &Catalog{episodes: episodes, byID: byID}, nil
}

// Episodes returns the full list in dataset order. Callers must not modify
// the returned slice.
func (c *Catalog) Episodes() []*Episode {
	return c.episodes
}

func (c *Catalog) Len() int {
	return len(c.episodes)
}

// FindByID returns the episode with the given id, or false when the id has
// no matching record.
func (c *Catalog) FindByID(id int) (*Episode, bool) {
	ep, ok := c.byID[id]
	return ep, ok
}

// Previous returns the episode adjacent to id on the lower side (id-1).
func (c *Catalog) Previous(id int) (*Episode, bool) {
	return c.FindByID(id - 1)
}

// Next returns the episode adjacent to id on the upper side (id+1).
func (c *Catalog) Next(id int) (*Episode, bool) {
	return c.FindByID(id + 1)
}

// Latest returns the first n episodes in dataset order, fewer when the
// catalog is smaller.
func (c *Catalog) Latest(n int) []*Episode {
	if n > len(c.episodes) {
		n = len(c.episodes)
	}
	return c.episodes[:n]
}
