// internal/models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"", SortDefault, false},
		{"default", SortDefault, false},
		{"current_price", SortCurrentPriceAsc, false},
		{"current_price_asc", SortCurrentPriceAsc, false},
		{"current_price_desc", SortCurrentPriceDesc, false},
		{"future_price", SortFuturePriceAsc, false},
		{"future_price_asc", SortFuturePriceAsc, false},
		{"future_price_desc", SortFuturePriceDesc, false},
		{"cheapest", "", true},
		{"CURRENT_PRICE", "", true},
	}

	for _, tt := range tests {
		t.Run("key "+tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredictionLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "Excellent"},
		{80, "Excellent"},
		{79.9, "Good"},
		{60, "Good"},
		{59.9, "Average"},
		{40, "Average"},
		{39.9, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Prediction{SustainabilityScore: tt.score}.Label())
	}
}

func TestHasPrice(t *testing.T) {
	assert.True(t, (&PropertyRecord{CurrentPrice: 100_000}).HasPrice())
	assert.True(t, (&PropertyRecord{LastSoldPrice: 100_000}).HasPrice())
	assert.False(t, (&PropertyRecord{}).HasPrice())
	assert.False(t, (&PropertyRecord{CurrentPrice: -1}).HasPrice())
}
