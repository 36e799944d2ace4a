package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_reviews/internal/domain"
	"hotel_reviews/internal/parser"
)

const threeReviews = `{
  "reviewDetails": {
    "numberOfReviewsInThisPage": 3,
    "reviewCollection": {
      "review": [
        {"hotelId": "25622", "reviewId": "a1", "ratingOverall": 5, "title": "Great",
         "reviewText": "Loved it", "userNickname": "bob", "reviewSubmissionDate": "2016-06-29 16:00:00"},
        {"hotelId": "25622", "reviewId": "a2", "ratingOverall": 6, "title": "Too good",
         "reviewText": "Off the charts", "userNickname": "eve", "reviewSubmissionDate": "2016-06-30 10:00:00"},
        {"hotelId": "25622", "reviewId": "a3", "ratingOverall": "2", "title": "",
         "reviewText": "Noisy", "userNickname": "", "reviewSubmissionDate": "2016-07-01"}
      ]
    }
  }
}`

func TestParseReviews_DropsOnlyInvalidRating(t *testing.T) {
	res, err := parser.ParseReviews([]byte(threeReviews))
	require.NoError(t, err)
	require.Len(t, res.Reviews, 2)
	assert.Equal(t, "a1", res.Reviews[0].ReviewID)
	assert.Equal(t, "a3", res.Reviews[1].ReviewID)
	assert.Equal(t, 2, res.Reviews[1].Rating)
	assert.Equal(t, domain.DefaultNickname, res.Reviews[1].Nickname)
	assert.Equal(t, "2016-06-29", res.Reviews[0].DateOnly())

	require.Len(t, res.Rejected, 1)
	assert.True(t, errors.Is(res.Rejected[0], domain.ErrInvalidRating))
	var de *domain.Error
	require.True(t, errors.As(res.Rejected[0], &de))
	assert.Equal(t, 1, de.Index)
}

func TestParseReviews_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"reviewDetails": `,
		"empty":          ``,
		"top level list": `[1, 2, 3]`,
		"no details":     `{"other": {}}`,
		"no collection":  `{"reviewDetails": {}}`,
		"no array":       `{"reviewDetails": {"reviewCollection": {}}}`,
		"null array":     `{"reviewDetails": {"reviewCollection": {"review": null}}}`,
		"wrong type":     `{"reviewDetails": {"reviewCollection": {"review": "nope"}}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := parser.ParseReviews([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedFile), "got %v", err)
			assert.Empty(t, res.Reviews)
		})
	}
}

func TestParseReviews_EmptyArray(t *testing.T) {
	res, err := parser.ParseReviews([]byte(`{"reviewDetails": {"reviewCollection": {"review": []}}}`))
	require.NoError(t, err)
	assert.Empty(t, res.Reviews)
	assert.Empty(t, res.Rejected)
}

func TestParseReviews_RecordLevelProblems(t *testing.T) {
	doc := `{"reviewDetails": {"reviewCollection": {"review": [
		"not an object",
		{"hotelId": "1", "reviewId": "x", "reviewText": "no rating"},
		{"hotelId": "1", "reviewId": "y", "ratingOverall": 3},
		{"hotelId": "", "reviewId": "z", "ratingOverall": 3, "reviewText": "no hotel"},
		{"hotelId": 1, "reviewId": 77, "ratingOverall": 4.0, "reviewText": "numeric ids"},
		{"hotelId": "1", "reviewId": "w", "ratingOverall": 3.5, "reviewText": "half star"}
	]}}}`

	res, err := parser.ParseReviews([]byte(doc))
	require.NoError(t, err)
	require.Len(t, res.Reviews, 1)
	assert.Equal(t, "1", res.Reviews[0].HotelID)
	assert.Equal(t, "77", res.Reviews[0].ReviewID)
	assert.Equal(t, 4, res.Reviews[0].Rating)

	require.Len(t, res.Rejected, 5)
	for i, e := range res.Rejected {
		assert.True(t, errors.Is(e, domain.ErrInvalidRecord), "rejected %d: %v", i, e)
	}
	var de *domain.Error
	require.True(t, errors.As(res.Rejected[4], &de))
	assert.Equal(t, 5, de.Index)
}
