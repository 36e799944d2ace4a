package mysql

import (
	"context"
	"database/sql"
	"strings"

	"hotel_reviews/internal/domain"
)

// rows per INSERT; keeps statements well under the placeholder limit
const batchSize = 500

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotels(ctx context.Context, hs []domain.Hotel) error {
	for start := 0; start < len(hs); start += batchSize {
		chunk := hs[start:min(start+batchSize, len(hs))]
		values := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*7)
		for _, h := range chunk {
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args, h.ID, h.Name, valStr(h.Address), valStr(h.City), valStr(h.State), valStr(h.Lat), valStr(h.Lng))
		}
		q := insertHotelsPrefix + strings.Join(values, ",") + insertHotelsOnDup
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

// UpsertReviews writes rs in batches. Reviews with an id replace the stored
// row with that id; reviews without one are always inserted.
func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	for start := 0; start < len(rs); start += batchSize {
		chunk := rs[start:min(start+batchSize, len(rs))]
		values := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*7) // 7 params per row
		for _, rv := range chunk {
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args,
				valStr(rv.ReviewID),       // review_id
				rv.HotelID,                // hotel_id
				rv.Rating,                 // rating
				valStr(rv.Title),          // title
				rv.Text,                   // text
				rv.Nickname,               // nickname
				valStr(rv.SubmissionDate), // submitted_at
			)
		}
		q := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

// LikeCounts returns the number of likes per review id. Ids without likes
// are absent from the map.
func (r *Repo) LikeCounts(ctx context.Context, reviewIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(reviewIDs))
	for i, id := range reviewIDs {
		args[i] = id
	}
	q := likeCountsPrefix + strings.TrimSuffix(strings.Repeat("?,", len(reviewIDs)), ",") + likeCountsSuffix
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

var _ domain.ReviewRepository = (*Repo)(nil)
