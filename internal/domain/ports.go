package domain

import "context"

// ReviewStore is the aggregate of ingested reviews keyed by hotel id. The
// plain and the lock-protected implementations both satisfy it.
type ReviewStore interface {
	// Merge appends one file's reviews for a single hotel.
	Merge(hotelID string, reviews []Review)
	// MergeFile appends a whole file's reviews, grouped by hotel, as one unit.
	MergeFile(reviews []Review)
	// Query returns up to limit reviews starting at offset in stored order.
	Query(hotelID string, limit, offset int) []Review
	HotelIDs() []string
	Count(hotelID string) int
	// Version changes whenever the contents change.
	Version() uint64
	Reset()
}

type LikeCounter interface {
	LikeCounts(ctx context.Context, reviewIDs []string) (map[string]int, error)
}

// ReviewRepository persists what ingestion produced. It lives outside the
// ingestion path; the in-memory store stays the source of truth for reads.
type ReviewRepository interface {
	UpsertHotels(ctx context.Context, hs []Hotel) error
	UpsertReviews(ctx context.Context, rs []Review) error
	LikeCounter
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type ReviewsPage struct {
	Items      []Review `json:"items"`
	Offset     int      `json:"offset"`
	Limit      int      `json:"limit"`
	NextOffset *int     `json:"next_offset,omitempty"`
}

type HotelCatalog interface {
	Get(id string) (Hotel, bool)
	FindByKeyword(keyword string) []Hotel
	All() []Hotel
}

// HotelView is a catalog entry plus what ingestion knows about it.
type HotelView struct {
	Hotel
	ReviewCount int `json:"review_count"`
}
