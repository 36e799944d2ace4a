package app

import "hotel_reviews/internal/domain"

// ReviewService is the plain read path over the ingested store: no likes,
// no cache.
type ReviewService struct {
	store domain.ReviewStore
}

func NewReviewService(s domain.ReviewStore) *ReviewService {
	return &ReviewService{store: s}
}

// GetReviews returns up to limit of a hotel's reviews starting at offset, in
// stored order. limit <= 0 means all remaining; a negative offset is 0. An
// unknown hotel or an offset past the end gives an empty slice.
func (s *ReviewService) GetReviews(hotelID string, limit, offset int) []domain.Review {
	return s.store.Query(hotelID, limit, offset)
}
