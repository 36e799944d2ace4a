package memory

import (
	"sync"

	"hotel_reviews/internal/domain"
)

// Locked guards another ReviewStore with one RWMutex. Writes take the
// exclusive lock once per call, so a file merged through MergeFile is
// visible to readers either completely or not at all.
type Locked struct {
	mu    sync.RWMutex
	inner domain.ReviewStore
}

func NewLocked(inner domain.ReviewStore) *Locked {
	return &Locked{inner: inner}
}

// NewStore is the store ingestion normally runs against.
func NewStore() *Locked { return NewLocked(NewReviews()) }

func (l *Locked) Merge(hotelID string, reviews []domain.Review) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Merge(hotelID, reviews)
}

func (l *Locked) MergeFile(reviews []domain.Review) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.MergeFile(reviews)
}

func (l *Locked) Query(hotelID string, limit, offset int) []domain.Review {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Query(hotelID, limit, offset)
}

func (l *Locked) HotelIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.HotelIDs()
}

func (l *Locked) Count(hotelID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Count(hotelID)
}

func (l *Locked) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner.Version()
}

func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Reset()
}

var (
	_ domain.ReviewStore = (*Reviews)(nil)
	_ domain.ReviewStore = (*Locked)(nil)
)
