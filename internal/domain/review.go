package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultNickname is used when a review arrives without an author nickname.
const DefaultNickname = "Anonymous"

type Review struct {
	HotelID        string `json:"hotel_id" validate:"required"`
	ReviewID       string `json:"review_id"` // empty until a downstream system assigns one
	Rating         int    `json:"rating" validate:"min=1,max=5"`
	Title          string `json:"title"`
	Text           string `json:"text"`
	Nickname       string `json:"nickname"`
	SubmissionDate string `json:"submission_date"`
	LikeCount      int    `json:"like_count"` // attached after querying, never set by ingestion
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewReview builds a validated review. An out-of-range rating yields an
// *Error of KindInvalidRating, a missing hotel id one of KindInvalidRecord.
func NewReview(hotelID, reviewID string, rating int, title, text, nickname, date string) (Review, error) {
	r := Review{
		HotelID:        hotelID,
		ReviewID:       reviewID,
		Rating:         rating,
		Title:          title,
		Text:           text,
		Nickname:       strings.TrimSpace(nickname),
		SubmissionDate: date,
	}
	if r.Nickname == "" {
		r.Nickname = DefaultNickname
	}
	if err := validate.Struct(r); err != nil {
		return Review{}, validationError(err, r)
	}
	return r, nil
}

// DateOnly is the submission date up to the first space, used for display grouping.
func (r Review) DateOnly() string {
	d, _, _ := strings.Cut(r.SubmissionDate, " ")
	return d
}

func validationError(err error, r Review) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return RecordErr(KindInvalidRecord, -1, err)
	}
	for _, fe := range ve {
		if fe.Field() == "Rating" {
			return RecordErr(KindInvalidRating, -1, fmt.Errorf("rating %d outside [1,5]", r.Rating))
		}
	}
	fe := ve[0]
	return RecordErr(KindInvalidRecord, -1, fmt.Errorf("field %s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
}
