package memory

import (
	"sort"
	"strings"
	"sync"

	"hotel_reviews/internal/domain"
)

// Catalog is the set of known hotels, loaded once from the hotels file and
// read by the API.
type Catalog struct {
	mu     sync.RWMutex
	hotels map[string]domain.Hotel
}

func NewCatalog() *Catalog {
	return &Catalog{hotels: map[string]domain.Hotel{}}
}

func (c *Catalog) Put(hs ...domain.Hotel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range hs {
		c.hotels[h.ID] = h
	}
}

func (c *Catalog) Get(id string) (domain.Hotel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.hotels[id]
	return h, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hotels)
}

// FindByKeyword matches keyword against hotel names, case-insensitively.
// An empty keyword returns every hotel. Results are sorted by name, then id.
func (c *Catalog) FindByKeyword(keyword string) []domain.Hotel {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	c.mu.RLock()
	out := make([]domain.Hotel, 0)
	for _, h := range c.hotels {
		if strings.Contains(strings.ToLower(h.Name), kw) {
			out = append(out, h)
		}
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// All returns every hotel, sorted by id.
func (c *Catalog) All() []domain.Hotel {
	c.mu.RLock()
	out := make([]domain.Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		out = append(out, h)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
