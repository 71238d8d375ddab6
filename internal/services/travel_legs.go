package services

import (
	"context"
	"sync"

	"trip-planner-service/internal/domain"
)

// Bound on concurrent leg estimation; small because estimation is CPU-cheap
// and days are short.
const legWorkers = 4

// computeLegs evaluates the travel leg between every consecutive pair of
// stops in route order. Legs are computed concurrently and reassembled by
// index, so the result order is the route order regardless of completion
// order. legs[i] is the travel into stop i+1; the first stop has no leg.
func computeLegs(
	ctx context.Context,
	estimator *TravelEstimator,
	stops []domain.GeoLocation,
	allowed []domain.TravelMode,
) []domain.TravelInfo {
	if len(stops) < 2 {
		return nil
	}

	legs := make([]domain.TravelInfo, len(stops)-1)

	sem := make(chan struct{}, legWorkers)
	var wg sync.WaitGroup

	for i := 1; i < len(stops); i++ {
		wg.Add(1)
		go func(idx int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			legs[idx-1] = estimator.Estimate(ctx, stops[idx-1], stops[idx], allowed)
		}(i)
	}

	wg.Wait()
	return legs
}
