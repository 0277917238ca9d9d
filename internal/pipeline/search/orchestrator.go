// internal/pipeline/search/orchestrator.go
package search

import (
	"context"
	"math"
	"sort"
	"time"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/common/logger"
	"property-search/internal/common/metrics"
	"property-search/internal/models"
	"property-search/internal/pipeline/predict"
	"property-search/internal/pipeline/sanitize"
	"property-search/internal/scansan"
	"property-search/pkg/areas"
)

// Fetcher resolves a validated query to a record set. Satisfied by
// *scansan.Client; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, query models.Query) *scansan.FetchResult
}

// Orchestrator drives the full search pipeline: validation, fetch,
// sanitization, prediction and ranking. One search is stateless end to
// end; the only blocking I/O is the fetcher's single API attempt.
type Orchestrator struct {
	fetcher   Fetcher
	sanitizer *sanitize.Sanitizer
	predictor *predict.Predictor
	registry  *areas.Registry
	logger    logger.Logger
}

func New(fetcher Fetcher, sanitizer *sanitize.Sanitizer, predictor *predict.Predictor,
	registry *areas.Registry, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		sanitizer: sanitizer,
		predictor: predictor,
		registry:  registry,
		logger:    log.WithFields(map[string]interface{}{"component": "search"}),
	}
}

// Search validates the query, fetches records (live or mock), enriches
// each with predictions and returns them ranked by the requested key.
//
// Error policy: validation and prediction-schema failures surface to the
// caller; fetch failures were already absorbed by the client's fallback;
// a record the sanitizer rejects is skipped so one bad upstream record
// never fails the whole search.
func (o *Orchestrator) Search(ctx context.Context, query models.Query) (*models.RankedResultSet, error) {
	start := time.Now()

	if err := ValidateQuery(query, o.registry); err != nil {
		metrics.SearchesFailed.WithLabelValues(string(stderrors.ErrCodeValidationFailed)).Inc()
		return nil, err
	}

	sortKey, _ := models.ParseSortKey(string(query.SortKey))

	fetched := o.fetcher.Fetch(ctx, query)

	listings := make([]models.EnrichedListing, 0, len(fetched.Records))
	skipped := 0
	for i := range fetched.Records {
		record := &fetched.Records[i]

		features, err := o.sanitizer.Sanitize(record)
		if err != nil {
			skipped++
			metrics.RecordsSkipped.Inc()
			o.logger.WithError(err).Warn("skipping record that failed sanitization", map[string]interface{}{
				"recordId": record.ID,
				"address":  record.Address,
			})
			continue
		}

		prediction, err := o.predictor.Predict(features)
		if err != nil {
			// A schema mismatch means the pipeline itself is broken;
			// surfacing it beats silently corrupting every prediction.
			metrics.SearchesFailed.WithLabelValues(string(stderrors.ErrCodePredictionFailed)).Inc()
			return nil, err
		}

		listings = append(listings, models.EnrichedListing{
			PropertyRecord:      *record,
			Prediction:          prediction,
			SustainabilityLabel: prediction.Label(),
		})
	}

	sortListings(listings, sortKey)

	elapsed := time.Since(start)
	metrics.SearchesTotal.WithLabelValues(string(fetched.Source)).Inc()
	metrics.SearchDuration.WithLabelValues(string(fetched.Source)).Observe(elapsed.Seconds())

	o.logger.Info("search completed", map[string]interface{}{
		"area":       query.Area,
		"provenance": fetched.Source,
		"returned":   len(listings),
		"skipped":    skipped,
		"durationMs": elapsed.Milliseconds(),
	})

	return &models.RankedResultSet{
		Listings:   listings,
		Provenance: fetched.Source,
		Skipped:    skipped,
	}, nil
}

// sortListings orders the result set. Sorts are stable so ties keep the
// original fetch order, which keeps results reproducible.
func sortListings(listings []models.EnrichedListing, key models.SortKey) {
	switch key {
	case models.SortCurrentPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return currentPriceOrInf(listings[i]) < currentPriceOrInf(listings[j])
		})
	case models.SortCurrentPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return currentPriceOrZero(listings[i]) > currentPriceOrZero(listings[j])
		})
	case models.SortFuturePriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Prediction.FuturePrice < listings[j].Prediction.FuturePrice
		})
	case models.SortFuturePriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Prediction.FuturePrice > listings[j].Prediction.FuturePrice
		})
	default:
		// Default view: listings with a known current price first,
		// otherwise fetch order.
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].CurrentPrice > 0 && listings[j].CurrentPrice <= 0
		})
	}
}

// Unpriced listings sink to the bottom in either direction.
func currentPriceOrInf(l models.EnrichedListing) float64 {
	if l.CurrentPrice <= 0 {
		return math.Inf(1)
	}
	return float64(l.CurrentPrice)
}

func currentPriceOrZero(l models.EnrichedListing) float64 {
	if l.CurrentPrice <= 0 {
		return 0
	}
	return float64(l.CurrentPrice)
}
