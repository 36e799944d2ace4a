// Package memory holds the process-local aggregate of ingested reviews and
// the hotel catalog.
package memory

import (
	"sort"

	"hotel_reviews/internal/domain"
)

// Reviews is the plain aggregate. It is not safe for concurrent use; wrap it
// with NewLocked for that.
type Reviews struct {
	byHotel map[string][]domain.Review
	version uint64
}

func NewReviews() *Reviews {
	return &Reviews{byHotel: map[string][]domain.Review{}}
}

func (s *Reviews) Merge(hotelID string, reviews []domain.Review) {
	if len(reviews) == 0 {
		return
	}
	s.byHotel[hotelID] = append(s.byHotel[hotelID], reviews...)
	s.version++
}

// MergeFile appends reviews grouped by their hotel id, keeping file order
// within each hotel.
func (s *Reviews) MergeFile(reviews []domain.Review) {
	if len(reviews) == 0 {
		return
	}
	for _, r := range reviews {
		s.byHotel[r.HotelID] = append(s.byHotel[r.HotelID], r)
	}
	s.version++
}

// Query returns a copy of up to limit reviews from offset. limit <= 0 means
// everything after offset.
func (s *Reviews) Query(hotelID string, limit, offset int) []domain.Review {
	all := s.byHotel[hotelID]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []domain.Review{}
	}
	end := len(all)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	out := make([]domain.Review, end-offset)
	copy(out, all[offset:end])
	return out
}

func (s *Reviews) HotelIDs() []string {
	ids := make([]string, 0, len(s.byHotel))
	for id := range s.byHotel {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Reviews) Count(hotelID string) int { return len(s.byHotel[hotelID]) }

func (s *Reviews) Version() uint64 { return s.version }

func (s *Reviews) Reset() {
	s.byHotel = map[string][]domain.Review{}
	s.version++
}
