// internal/pipeline/predict/predictor.go
package predict

import (
	"fmt"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/models"
)

// Predictor wraps the pre-trained regression model. The model is loaded
// once at process start; inference is pure arithmetic and safe for
// concurrent use.
type Predictor struct {
	artifact *Artifact
}

// New loads the model artifact from path and returns a ready predictor.
func New(artifactPath string) (*Predictor, error) {
	artifact, err := LoadArtifact(artifactPath)
	if err != nil {
		return nil, err
	}
	return &Predictor{artifact: artifact}, nil
}

// NewFromArtifact builds a predictor around an already loaded artifact.
func NewFromArtifact(artifact *Artifact) (*Predictor, error) {
	if err := artifact.validate(); err != nil {
		return nil, err
	}
	return &Predictor{artifact: artifact}, nil
}

// SchemaVersion reports the feature layout the model was trained on.
func (p *Predictor) SchemaVersion() string {
	return p.artifact.SchemaVersion
}

// Predict runs both regression heads over one feature vector. A vector
// whose version or length does not match the trained schema is a broken
// pipeline, not bad data, and fails hard.
func (p *Predictor) Predict(features models.FeatureVector) (models.Prediction, error) {
	if features.SchemaVersion != p.artifact.SchemaVersion {
		return models.Prediction{}, stderrors.NewPredictionError(fmt.Sprintf(
			"feature schema %q does not match model schema %q",
			features.SchemaVersion, p.artifact.SchemaVersion))
	}
	if len(features.Values) != p.artifact.FeatureCount {
		return models.Prediction{}, stderrors.NewPredictionError(fmt.Sprintf(
			"feature vector has %d values, model expects %d",
			len(features.Values), p.artifact.FeatureCount))
	}

	price := p.artifact.FuturePrice.score(features.Values)
	if price < 0 {
		price = 0
	}

	score := p.artifact.Sustainability.score(features.Values)
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return models.Prediction{
		FuturePrice:         price,
		SustainabilityScore: score,
	}, nil
}
