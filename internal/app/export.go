package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_reviews/internal/adapters/observability"
	"hotel_reviews/internal/domain"
)

// ExportService copies what ingestion loaded into the repository. It runs
// after Ingest has returned and only reads the store.
type ExportService struct {
	store   domain.ReviewStore
	catalog domain.HotelCatalog
	repo    domain.ReviewRepository
	workers int
}

func NewExportService(s domain.ReviewStore, cat domain.HotelCatalog, r domain.ReviewRepository, workers int) *ExportService {
	if workers <= 0 {
		workers = 4
	}
	return &ExportService{store: s, catalog: cat, repo: r, workers: workers}
}

// Export upserts the catalog, then each hotel's reviews with at most
// `workers` hotels in flight. Every hotel is attempted; the first failure is
// returned.
func (e *ExportService) Export(ctx context.Context) error {
	if e.catalog != nil {
		if hs := e.catalog.All(); len(hs) > 0 {
			if err := e.repo.UpsertHotels(ctx, hs); err != nil {
				return fmt.Errorf("upsert hotels: %w", err)
			}
			log.Info().Int("hotels", len(hs)).Msg("catalog exported")
		}
	}

	sem := semaphore.NewWeighted(int64(e.workers))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, id := range e.store.HotelIDs() {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(hotelID string) {
			defer wg.Done()
			defer sem.Release(1)

			rs := e.store.Query(hotelID, 0, 0)
			if err := e.repo.UpsertReviews(ctx, rs); err != nil {
				observability.ObserveExport("failed")
				log.Warn().Str("hotel_id", hotelID).Err(err).Msg("export failed")
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("upsert reviews for %s: %w", hotelID, err)
				}
				mu.Unlock()
				return
			}
			observability.ObserveExport("ok")
			log.Debug().Str("hotel_id", hotelID).Int("reviews", len(rs)).Msg("export ok")
		}(id)
	}

	wg.Wait()
	return firstErr
}
