package catalog

import "time"

// Episode is one installment of the show. Episodes are loaded once at startup
// and never mutated.
type Episode struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Duration    string   `json:"duration"` // display string, e.g. "45 min"
	Date        string   `json:"date"`     // ISO-8601, e.g. "2025-03-14"
	Image       string   `json:"image"`
	AudioURL    string   `json:"audioUrl"`
	Credits     *Credits `json:"credits,omitempty"`
}

// Credits lists the sources an episode draws on.
type Credits struct {
	MainSource        *MainSource        `json:"mainSource,omitempty"`
	AdditionalSources []AdditionalSource `json:"additionalSources,omitempty"`
}

type MainSource struct {
	Title     string   `json:"title"`
	Author    string   `json:"author,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Year      int      `json:"year,omitempty"`
	Links     []string `json:"links,omitempty"`
}

type AdditionalSource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PublishedAt parses the episode date. The zero time is returned for
// malformed dates so callers can fall back to the raw string.
func (e *Episode) PublishedAt() time.Time {
	t, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
