// internal/models/features.go
package models

// FeatureVector is the sanitized, model-ready encoding of one property
// record. Values follow a fixed field order owned by the sanitizer; the
// predictor rejects vectors whose version or length it does not recognize.
type FeatureVector struct {
	SchemaVersion string    `json:"schemaVersion"`
	Values        []float64 `json:"values"`
}
