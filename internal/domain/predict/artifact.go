package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/features"
)

// Artifact is the persisted model bundle: the fitted predictor, the encoder
// tables it was trained with, the feature column order its weights assume,
// and training metadata. Immutable once written; the serving process loads
// it exactly once.
type Artifact struct {
	ModelName      string            `json:"model_name"`
	Linear         *LinearModel      `json:"linear,omitempty"`
	Tree           *TreeModel        `json:"tree,omitempty"`
	BranchEncoder  *features.Encoder `json:"branch_encoder"`
	ServiceEncoder *features.Encoder `json:"service_encoder"`
	FeatureColumns []string          `json:"feature_columns"`
	TrainedAt      time.Time         `json:"trained_at"`
}

// Model returns the fitted predictor carried by the artifact.
func (a *Artifact) Model() (Model, error) {
	switch {
	case a.Linear != nil:
		return a.Linear, nil
	case a.Tree != nil:
		return a.Tree, nil
	default:
		return nil, ErrNoModel
	}
}

// Validate checks the artifact is internally consistent with the current
// feature schema. A stale or hand-edited bundle must not serve predictions.
func (a *Artifact) Validate() error {
	if _, err := a.Model(); err != nil {
		return err
	}
	if a.BranchEncoder == nil || a.BranchEncoder.Len() == 0 {
		return fmt.Errorf("missing branch encoder: %w", ErrBadArtifact)
	}
	if a.ServiceEncoder == nil || a.ServiceEncoder.Len() == 0 {
		return fmt.Errorf("missing service encoder: %w", ErrBadArtifact)
	}
	want := features.Columns()
	if len(a.FeatureColumns) != len(want) {
		return fmt.Errorf("artifact has %d feature columns, schema has %d: %w",
			len(a.FeatureColumns), len(want), ErrBadArtifact)
	}
	for i, col := range want {
		if a.FeatureColumns[i] != col {
			return fmt.Errorf("feature column %d is %q, schema expects %q: %w",
				i, a.FeatureColumns[i], col, ErrBadArtifact)
		}
	}
	return nil
}

// Save writes the artifact as indented JSON, creating parent directories as
// needed.
func (a *Artifact) Save(path string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads and validates an artifact. Any failure leaves the caller
// without a model; the serving layer degrades to "not ready" rather than
// crashing.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
