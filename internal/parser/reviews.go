// Package parser turns raw review and hotel files into domain values. It does
// no I/O and keeps no state, so it is safe to call from any number of workers.
package parser

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"

	"hotel_reviews/internal/domain"
)

// Result holds the reviews accepted from one file, in file order, and the
// record-level errors for the ones that were dropped.
type Result struct {
	Reviews  []domain.Review
	Rejected []error
}

type reviewsDoc struct {
	ReviewDetails *struct {
		ReviewCollection *struct {
			Review *[]json.RawMessage `json:"review"`
		} `json:"reviewCollection"`
	} `json:"reviewDetails"`
}

type rawReview struct {
	HotelID  lenientString `json:"hotelId"`
	ReviewID lenientString `json:"reviewId"`
	Rating   *lenientInt   `json:"ratingOverall"`
	Title    string        `json:"title"`
	Text     *string       `json:"reviewText"`
	Nickname string        `json:"userNickname"`
	Date     string        `json:"reviewSubmissionDate"`
}

var (
	errEmpty         = errors.New("empty document")
	errNoReviewArray = errors.New("missing reviewDetails.reviewCollection.review array")
)

// ParseReviews decodes one review file. A document that is not JSON or lacks
// the review array yields a KindMalformedFile error and no reviews. Bad
// elements are rejected one by one and never fail the file.
func ParseReviews(data []byte) (Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, domain.PathErr(domain.KindMalformedFile, "", errEmpty)
	}
	var doc reviewsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, domain.PathErr(domain.KindMalformedFile, "", err)
	}
	if doc.ReviewDetails == nil || doc.ReviewDetails.ReviewCollection == nil ||
		doc.ReviewDetails.ReviewCollection.Review == nil {
		return Result{}, domain.PathErr(domain.KindMalformedFile, "", errNoReviewArray)
	}

	elems := *doc.ReviewDetails.ReviewCollection.Review
	res := Result{Reviews: make([]domain.Review, 0, len(elems))}
	for i, el := range elems {
		r, err := parseReview(el)
		if err != nil {
			var de *domain.Error
			if errors.As(err, &de) {
				de.Index = i
			} else {
				err = domain.RecordErr(domain.KindInvalidRecord, i, err)
			}
			res.Rejected = append(res.Rejected, err)
			continue
		}
		res.Reviews = append(res.Reviews, r)
	}
	return res, nil
}

func parseReview(el json.RawMessage) (domain.Review, error) {
	var raw rawReview
	if err := json.Unmarshal(el, &raw); err != nil {
		return domain.Review{}, err
	}
	if raw.Rating == nil {
		return domain.Review{}, errors.New("missing ratingOverall")
	}
	if raw.Text == nil {
		return domain.Review{}, errors.New("missing reviewText")
	}
	return domain.NewReview(
		string(raw.HotelID),
		string(raw.ReviewID),
		int(*raw.Rating),
		raw.Title,
		*raw.Text,
		raw.Nickname,
		raw.Date,
	)
}
