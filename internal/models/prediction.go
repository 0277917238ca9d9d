// internal/models/prediction.go
package models

// Prediction holds the two model outputs for one listing.
type Prediction struct {
	FuturePrice         float64 `json:"futurePrice"`
	SustainabilityScore float64 `json:"sustainabilityScore"`
}

// Label buckets the sustainability score into the bands shown to users.
func (p Prediction) Label() string {
	switch {
	case p.SustainabilityScore >= 80:
		return "Excellent"
	case p.SustainabilityScore >= 60:
		return "Good"
	case p.SustainabilityScore >= 40:
		return "Average"
	default:
		return "Poor"
	}
}

// EnrichedListing is a fetched record with its predictions attached.
type EnrichedListing struct {
	PropertyRecord
	Prediction          Prediction `json:"prediction"`
	SustainabilityLabel string     `json:"sustainabilityLabel"`
}

// RankedResultSet is the final, ordered output of one search.
type RankedResultSet struct {
	Listings   []EnrichedListing `json:"listings"`
	Provenance Source            `json:"provenance"`
	// Skipped counts records dropped because they could not be sanitized.
	Skipped int `json:"skipped,omitempty"`
}
