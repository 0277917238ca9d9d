// internal/pipeline/search/validation_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/models"
	"property-search/pkg/areas"
)

func TestValidateQuery(t *testing.T) {
	registry := areas.Default()

	tests := []struct {
		name    string
		query   models.Query
		wantErr string
	}{
		{
			name:  "search text only",
			query: models.Query{Area: "Camden", SearchText: "Camden Town"},
		},
		{
			name:  "district and street pair",
			query: models.Query{Area: "Camden", PostcodeDistrict: "NW1", Street: "Baker Street"},
		},
		{
			name:  "district with trailing letter",
			query: models.Query{Area: "London", PostcodeDistrict: "SW1A", Street: "Downing Street"},
		},
		{
			name:  "explicit sort key",
			query: models.Query{Area: "Leeds", SearchText: "Headingley", SortKey: models.SortFuturePriceDesc},
		},
		{
			name:  "short sort alias",
			query: models.Query{Area: "Leeds", SearchText: "Headingley", SortKey: "current_price"},
		},
		{
			name:    "unknown area",
			query:   models.Query{Area: "Atlantis", SearchText: "anything"},
			wantErr: "not a recognized area",
		},
		{
			name:    "no search term at all",
			query:   models.Query{Area: "Camden"},
			wantErr: "provide either a search term",
		},
		{
			name:    "district without street",
			query:   models.Query{Area: "Camden", PostcodeDistrict: "NW1"},
			wantErr: "provide either a search term",
		},
		{
			name:    "street without district",
			query:   models.Query{Area: "Camden", Street: "Baker Street"},
			wantErr: "provide either a search term",
		},
		{
			name:    "street alongside text but no district",
			query:   models.Query{Area: "Camden", SearchText: "Camden Town", Street: "Baker Street"},
			wantErr: "requires both the postcode district and the street name",
		},
		{
			name:    "full postcode rejected",
			query:   models.Query{Area: "Camden", SearchText: "NW1 6XE"},
			wantErr: "full postcodes are not supported",
		},
		{
			name:    "malformed district",
			query:   models.Query{Area: "Camden", PostcodeDistrict: "NW1 6XE", Street: "Baker Street"},
			wantErr: "not a valid postcode district",
		},
		{
			name:    "bad sort key",
			query:   models.Query{Area: "Camden", SearchText: "Camden Town", SortKey: "cheapest"},
			wantErr: "unknown sort key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query, registry)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, stderrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
