package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_reviews/internal/domain"
)

// QueryService is the read side used by the API. The store is the source of
// truth; like counts and the cache are optional collaborators (nil disables
// them).
type QueryService struct {
	store    domain.ReviewStore
	reviews  *ReviewService
	catalog  domain.HotelCatalog
	likes    domain.LikeCounter
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(s domain.ReviewStore, cat domain.HotelCatalog, likes domain.LikeCounter, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: s, reviews: NewReviewService(s), catalog: cat, likes: likes, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.HotelView, error) {
	h, ok := s.catalog.Get(id)
	n := s.store.Count(id)
	if !ok {
		if n == 0 {
			return domain.HotelView{}, domain.ErrNotFound
		}
		// reviews arrived for a hotel the catalog does not list
		h = domain.Hotel{ID: id}
	}
	return domain.HotelView{Hotel: h, ReviewCount: n}, nil
}

func (s *QueryService) FindHotels(ctx context.Context, keyword string) []domain.HotelView {
	hs := s.catalog.FindByKeyword(keyword)
	out := make([]domain.HotelView, 0, len(hs))
	for _, h := range hs {
		out = append(out, domain.HotelView{Hotel: h, ReviewCount: s.store.Count(h.ID)})
	}
	return out
}

// GetReviews returns one page of a hotel's reviews in stored order with like
// counts attached. The cache key carries the store version, so a page cached
// before a re-ingestion is never served after it. Likes change independently
// of ingestion, so they are looked up on every call and never cached.
func (s *QueryService) GetReviews(ctx context.Context, hotelID string, limit, offset int) (domain.ReviewsPage, error) {
	if offset < 0 {
		offset = 0
	}
	key := fmt.Sprintf("reviews:%s:%d:%d:v%d", hotelID, limit, offset, s.store.Version())
	var out domain.ReviewsPage
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			s.attachLikes(ctx, out.Items)
			return out, nil
		}
	}

	items := s.reviews.GetReviews(hotelID, limit, offset)
	out = domain.ReviewsPage{Items: items, Offset: offset, Limit: limit}
	if next := offset + len(items); len(items) > 0 && next < s.store.Count(hotelID) {
		out.NextOffset = &next
	}

	// optional size guard
	if s.cache != nil {
		if b, _ := json.Marshal(out); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
		}
	}
	s.attachLikes(ctx, out.Items)
	return out, nil
}

// attachLikes fills LikeCount on the page copy. Like counts are display
// metadata: a failure is logged and the page goes out with zeros.
func (s *QueryService) attachLikes(ctx context.Context, items []domain.Review) {
	if s.likes == nil || len(items) == 0 {
		return
	}
	ids := make([]string, 0, len(items))
	for _, r := range items {
		if r.ReviewID != "" {
			ids = append(ids, r.ReviewID)
		}
	}
	if len(ids) == 0 {
		return
	}
	counts, err := s.likes.LikeCounts(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Int("reviews", len(ids)).Msg("like counts unavailable")
		return
	}
	for i := range items {
		items[i].LikeCount = counts[items[i].ReviewID]
	}
}
