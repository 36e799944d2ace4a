package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/storage/memory"
)

func TestCatalog(t *testing.T) {
	c := memory.NewCatalog()
	c.Put(
		domain.Hotel{ID: "3", Name: "Hilton Garden Inn"},
		domain.Hotel{ID: "1", Name: "Hotel Nikko"},
		domain.Hotel{ID: "2", Name: "The Hilton"},
	)

	h, ok := c.Get("1")
	assert.True(t, ok)
	assert.Equal(t, "Hotel Nikko", h.Name)
	_, ok = c.Get("9")
	assert.False(t, ok)

	found := c.FindByKeyword("HILTON")
	assert.Len(t, found, 2)
	assert.Equal(t, "Hilton Garden Inn", found[0].Name)
	assert.Equal(t, "The Hilton", found[1].Name)

	assert.Len(t, c.FindByKeyword(""), 3)
	assert.Empty(t, c.FindByKeyword("marriott"))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "1", c.All()[0].ID)
}
