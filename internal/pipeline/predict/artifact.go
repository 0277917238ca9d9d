// internal/pipeline/predict/artifact.go
package predict

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the serialized form of the pre-trained regression model.
// Each target combines a linear term with a small ensemble of boosted
// stumps, which is enough to express the exported tree model faithfully.
type Artifact struct {
	SchemaVersion string `json:"schema_version"`
	FeatureCount  int    `json:"feature_count"`
	TrainedAt     string `json:"trained_at,omitempty"`

	FuturePrice    Target `json:"future_price"`
	Sustainability Target `json:"sustainability"`
}

// Target is one regression head of the model.
type Target struct {
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
	Stumps  []Stump   `json:"stumps,omitempty"`
}

// Stump is a depth-1 regression tree: if the feature at Feature is below
// Threshold the stump contributes Left, otherwise Right.
type Stump struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
}

// LoadArtifact reads and checks a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if err := artifact.validate(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (a *Artifact) validate() error {
	if a.SchemaVersion == "" {
		return fmt.Errorf("model artifact has no schema version")
	}
	if a.FeatureCount <= 0 {
		return fmt.Errorf("model artifact declares no features")
	}
	for name, target := range map[string]Target{
		"future_price":   a.FuturePrice,
		"sustainability": a.Sustainability,
	} {
		if len(target.Weights) != a.FeatureCount {
			return fmt.Errorf("%s target has %d weights, expected %d", name, len(target.Weights), a.FeatureCount)
		}
		for _, stump := range target.Stumps {
			if stump.Feature < 0 || stump.Feature >= a.FeatureCount {
				return fmt.Errorf("%s target references feature %d outside the schema", name, stump.Feature)
			}
		}
	}
	return nil
}

// score evaluates one target against a feature vector of the right length.
func (t Target) score(values []float64) float64 {
	out := t.Bias
	for i, w := range t.Weights {
		out += w * values[i]
	}
	for _, stump := range t.Stumps {
		if values[stump.Feature] < stump.Threshold {
			out += stump.Left
		} else {
			out += stump.Right
		}
	}
	return out
}
