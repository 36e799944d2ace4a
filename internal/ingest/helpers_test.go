package ingest_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hotel_reviews/internal/domain"
)

// reviewsDoc renders a review file for hotel with one review per rating.
// Review ids are prefix-0, prefix-1, ...
func reviewsDoc(t *testing.T, hotel, prefix string, ratings ...int) []byte {
	t.Helper()
	items := make([]map[string]any, 0, len(ratings))
	for i, r := range ratings {
		items = append(items, map[string]any{
			"hotelId":              hotel,
			"reviewId":             fmt.Sprintf("%s-%d", prefix, i),
			"ratingOverall":        r,
			"title":                "title",
			"reviewText":           "text",
			"userNickname":         "nick",
			"reviewSubmissionDate": "2016-06-29 16:00:00",
		})
	}
	b, err := json.Marshal(map[string]any{
		"reviewDetails": map[string]any{
			"reviewCollection": map[string]any{"review": items},
		},
	})
	require.NoError(t, err)
	return b
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// reviewIDs returns the ids stored for hotel, in stored order.
func reviewIDs(s domain.ReviewStore, hotel string) []string {
	var out []string
	for _, r := range s.Query(hotel, 0, 0) {
		out = append(out, r.ReviewID)
	}
	return out
}
