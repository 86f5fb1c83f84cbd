// Package scenario loads portfolio scenarios from YAML files.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/epq-service/internal/domain/model"
)

// ErrEmptyScenario is returned for a scenario without items.
var ErrEmptyScenario = errors.New("scenario has no items")

// Load reads and validates the scenario file at path.
func Load(path string) (model.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Parse(f)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario document. Unknown keys are rejected so that a
// misspelt cost field does not silently default to zero.
func Parse(r io.Reader) (model.Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s model.Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Scenario{}, ErrEmptyScenario
		}
		return model.Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if len(s.Items) == 0 {
		return model.Scenario{}, ErrEmptyScenario
	}

	seen := make(map[string]struct{}, len(s.Items))
	for i := range s.Items {
		if s.Items[i].Name == "" {
			s.Items[i].Name = fmt.Sprintf("item-%d", i+1)
		}
		if _, dup := seen[s.Items[i].Name]; dup {
			return model.Scenario{}, fmt.Errorf("duplicate item name %q", s.Items[i].Name)
		}
		seen[s.Items[i].Name] = struct{}{}
	}
	return s, nil
}

// WithDemand returns a copy of items whose annual demand is replaced by demand.
func WithDemand(items []model.PortfolioItem, demand float64) []model.PortfolioItem {
	out := make([]model.PortfolioItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Parameters.Demand = demand
	}
	return out
}
