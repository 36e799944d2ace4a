package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/parser"
)

func TestParseHotels(t *testing.T) {
	doc := `{"sr": [
		{"f": "Hilton San Francisco", "id": "12539", "ad": "750 Kearny St", "ci": "San Francisco",
		 "pr": "CA", "ll": {"lat": "37.79", "lng": -122.4}},
		{"f": "No id"}
	]}`
	hs, err := parser.ParseHotels([]byte(doc))
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, domain.Hotel{
		ID: "12539", Name: "Hilton San Francisco", Address: "750 Kearny St",
		City: "San Francisco", State: "CA", Lat: "37.79", Lng: "-122.4",
	}, hs[0])
}

func TestParseHotels_Malformed(t *testing.T) {
	for _, doc := range []string{`{`, `{"hotels": []}`} {
		_, err := parser.ParseHotels([]byte(doc))
		assert.True(t, errors.Is(err, domain.ErrMalformedFile), "doc %q: %v", doc, err)
	}
}

func TestLoadHotels(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "hotels.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"sr":[{"id":1,"f":"Inn"}]}`), 0o644))

	hs, err := parser.LoadHotels(p)
	require.NoError(t, err)
	assert.Equal(t, []domain.Hotel{{ID: "1", Name: "Inn"}}, hs)

	_, err = parser.LoadHotels(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, domain.ErrFileIO))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	_, err = parser.LoadHotels(bad)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindMalformedFile, de.Kind)
	assert.Equal(t, bad, de.Path)
}
