// internal/pipeline/search/orchestrator_test.go
package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/common/logger"
	"property-search/internal/models"
	"property-search/internal/pipeline/predict"
	"property-search/internal/pipeline/sanitize"
	"property-search/internal/scansan"
	"property-search/pkg/areas"
)

func testRegistry() *areas.Registry {
	return areas.Default()
}

func testLoggerFor(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

type fakeFetcher struct {
	result    *scansan.FetchResult
	lastQuery models.Query
}

func (f *fakeFetcher) Fetch(_ context.Context, query models.Query) *scansan.FetchResult {
	f.lastQuery = query
	return f.result
}

// testPredictor scores future price from the bedroom count alone so tests
// can order listings independently of their current price.
func testPredictor(t *testing.T) *predict.Predictor {
	t.Helper()

	artifact := &predict.Artifact{
		SchemaVersion:  sanitize.SchemaVersion,
		FeatureCount:   sanitize.FeatureCount,
		FuturePrice:    predict.Target{Weights: make([]float64, sanitize.FeatureCount)},
		Sustainability: predict.Target{Bias: 55, Weights: make([]float64, sanitize.FeatureCount)},
	}
	artifact.FuturePrice.Weights[3] = 100_000 // bedrooms

	p, err := predict.NewFromArtifact(artifact)
	require.NoError(t, err)
	return p
}

func testRecord(id string, price int64, bedrooms int) models.PropertyRecord {
	return models.PropertyRecord{
		ID:           id,
		Address:      id + " Baker Street",
		Area:         "Camden",
		CurrentPrice: price,
		Bedrooms:     bedrooms,
		PropertyType: "Terraced house",
		EPCBand:      "C",
	}
}

func newTestOrchestrator(t *testing.T, fetcher Fetcher) *Orchestrator {
	t.Helper()
	return New(fetcher, sanitize.NewAt(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		testPredictor(t), testRegistry(), testLoggerFor(t))
}

func TestSearch_RejectsInvalidQuery(t *testing.T) {
	fetcher := &fakeFetcher{result: &scansan.FetchResult{Source: models.SourceMock}}
	o := newTestOrchestrator(t, fetcher)

	_, err := o.Search(context.Background(), models.Query{Area: "Atlantis", SearchText: "x"})
	require.Error(t, err)
	assert.True(t, stderrors.IsValidation(err))
	assert.Empty(t, fetcher.lastQuery.Area, "fetch must not run for an invalid query")
}

func TestSearch_EnrichesAndReportsProvenance(t *testing.T) {
	fetcher := &fakeFetcher{result: &scansan.FetchResult{
		Records: []models.PropertyRecord{testRecord("1", 400_000, 3)},
		Source:  models.SourceAPI,
	}}
	o := newTestOrchestrator(t, fetcher)

	result, err := o.Search(context.Background(), models.Query{Area: "Camden", SearchText: "Camden Town"})
	require.NoError(t, err)

	assert.Equal(t, models.SourceAPI, result.Provenance)
	assert.Zero(t, result.Skipped)
	require.Len(t, result.Listings, 1)

	listing := result.Listings[0]
	assert.InDelta(t, 300_000, listing.Prediction.FuturePrice, 0.001)
	assert.Equal(t, 55.0, listing.Prediction.SustainabilityScore)
	assert.Equal(t, "Average", listing.SustainabilityLabel)
}

func TestSearch_SkipsUnsanitizableRecords(t *testing.T) {
	bad := testRecord("bad", 0, 2)
	bad.LastSoldPrice = 0 // no price signal at all

	fetcher := &fakeFetcher{result: &scansan.FetchResult{
		Records: []models.PropertyRecord{
			testRecord("1", 400_000, 3),
			bad,
			testRecord("2", 350_000, 2),
		},
		Source: models.SourceMock,
	}}
	o := newTestOrchestrator(t, fetcher)

	result, err := o.Search(context.Background(), models.Query{Area: "Camden", SearchText: "Camden Town"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Listings, 2)
	for _, l := range result.Listings {
		assert.NotEqual(t, "bad", l.ID)
	}
}

func TestSearch_PredictionSchemaMismatchFailsSearch(t *testing.T) {
	artifact := &predict.Artifact{
		SchemaVersion:  "v0",
		FeatureCount:   sanitize.FeatureCount,
		FuturePrice:    predict.Target{Weights: make([]float64, sanitize.FeatureCount)},
		Sustainability: predict.Target{Weights: make([]float64, sanitize.FeatureCount)},
	}
	predictor, err := predict.NewFromArtifact(artifact)
	require.NoError(t, err)

	fetcher := &fakeFetcher{result: &scansan.FetchResult{
		Records: []models.PropertyRecord{testRecord("1", 400_000, 3)},
		Source:  models.SourceMock,
	}}
	o := New(fetcher, sanitize.New(), predictor, testRegistry(), testLoggerFor(t))

	_, err = o.Search(context.Background(), models.Query{Area: "Camden", SearchText: "Camden Town"})
	require.Error(t, err)
	assert.True(t, stderrors.IsPrediction(err))
}

func TestSearch_Sorting(t *testing.T) {
	// Fetch order: b (mid price, most bedrooms), a (cheapest, fewest),
	// c (priciest, mid). Future price follows bedrooms, not price.
	records := []models.PropertyRecord{
		testRecord("b", 500_000, 5),
		testRecord("a", 300_000, 1),
		testRecord("c", 700_000, 3),
	}

	tests := []struct {
		name    string
		sortKey models.SortKey
		wantIDs []string
	}{
		{"current price ascending", models.SortCurrentPriceAsc, []string{"a", "b", "c"}},
		{"current price descending", models.SortCurrentPriceDesc, []string{"c", "b", "a"}},
		{"future price ascending", models.SortFuturePriceAsc, []string{"a", "c", "b"}},
		{"future price descending", models.SortFuturePriceDesc, []string{"b", "c", "a"}},
		{"default keeps fetch order", models.SortDefault, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{result: &scansan.FetchResult{
				Records: append([]models.PropertyRecord(nil), records...),
				Source:  models.SourceMock,
			}}
			o := newTestOrchestrator(t, fetcher)

			result, err := o.Search(context.Background(), models.Query{
				Area:       "Camden",
				SearchText: "Camden Town",
				SortKey:    tt.sortKey,
			})
			require.NoError(t, err)

			got := make([]string, 0, len(result.Listings))
			for _, l := range result.Listings {
				got = append(got, l.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestSearch_SortIsStableOnTies(t *testing.T) {
	fetcher := &fakeFetcher{result: &scansan.FetchResult{
		Records: []models.PropertyRecord{
			testRecord("first", 400_000, 3),
			testRecord("second", 400_000, 3),
			testRecord("third", 400_000, 3),
		},
		Source: models.SourceMock,
	}}
	o := newTestOrchestrator(t, fetcher)

	result, err := o.Search(context.Background(), models.Query{
		Area:       "Camden",
		SearchText: "Camden Town",
		SortKey:    models.SortCurrentPriceAsc,
	})
	require.NoError(t, err)

	require.Len(t, result.Listings, 3)
	assert.Equal(t, "first", result.Listings[0].ID)
	assert.Equal(t, "second", result.Listings[1].ID)
	assert.Equal(t, "third", result.Listings[2].ID)
}

func TestSearch_UnpricedListingsSinkBothDirections(t *testing.T) {
	unpriced := testRecord("unpriced", 0, 2)
	unpriced.LastSoldPrice = 250_000 // sanitizes fine, CurrentPrice still zero

	for _, key := range []models.SortKey{models.SortCurrentPriceAsc, models.SortCurrentPriceDesc} {
		t.Run(string(key), func(t *testing.T) {
			fetcher := &fakeFetcher{result: &scansan.FetchResult{
				Records: []models.PropertyRecord{
					unpriced,
					testRecord("priced", 400_000, 3),
				},
				Source: models.SourceMock,
			}}
			o := newTestOrchestrator(t, fetcher)

			result, err := o.Search(context.Background(), models.Query{
				Area:       "Camden",
				SearchText: "Camden Town",
				SortKey:    key,
			})
			require.NoError(t, err)

			require.Len(t, result.Listings, 2)
			assert.Equal(t, "unpriced", result.Listings[1].ID)
		})
	}
}
