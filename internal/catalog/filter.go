package catalog

import "strings"

// CategoryAll is the sentinel category that matches every episode.
const CategoryAll = "Todas"

// Categories returns CategoryAll followed by each distinct episode category
// in first-seen dataset order.
func (c *Catalog) Categories() []string {
	categories := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, ep := range c.episodes {
		if ep.Category == "" || seen[ep.Category] {
			continue
		}
		seen[ep.Category] = true
		categories = append(categories, ep.Category)
	}
	return categories
}

// Filter returns the episodes matching both the category and the search
// term, in dataset order. The category CategoryAll (or "") matches every
// episode. The term is a case-insensitive substring test against title and
// description; a blank term matches every episode.
func (c *Catalog) Filter(term, category string) []*Episode {
	term = strings.ToLower(strings.TrimSpace(term))

	var result []*Episode
	for _, ep := range c.episodes {
		if category != "" && category != CategoryAll && ep.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(ep.Title), term) &&
			!strings.Contains(strings.ToLower(ep.Description), term) {
			continue
		}
		result = append(result, ep)
	}
	return result
}
