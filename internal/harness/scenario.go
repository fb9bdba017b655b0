package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stabdecomp/internal/ir"
)

// Scenario defines a conformance scenario: one diagram, one set of run
// options and the assertions the finished decomposition must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Diagram is the path of the input diagram (.zxt, .yaml, .json or .cue).
	// Relative paths are resolved against the scenario file's directory.
	Diagram string `yaml:"diagram"`

	// Options configure the run. Zero values mean full simplification,
	// first-T selection and a sequential decomposition.
	Options ir.RunOptions `yaml:"options,omitempty"`

	// Assertions validate the finished run.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of a finished run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "term_count": number of terminal terms equals Count
	// - "max_terms": the upfront bound renders as Value
	// - "frontier_size": after Depth breadth-first levels the frontier holds Count entries
	// - "tensor_sum": the saved terms sum to the input's tensor
	// - "fully_reduced": no terminal term kept a vertex
	// - "incomplete": exactly Count terminal terms kept vertices
	// - "stored_terms": the archive holds Count saved terms for the run
	Type string `yaml:"type"`

	// Count is the expected number (term_count, frontier_size, incomplete, stored_terms).
	Count int `yaml:"count,omitempty"`

	// Value is the expected decimal bound (max_terms).
	Value string `yaml:"value,omitempty"`

	// Depth is the number of breadth-first levels to expand (frontier_size).
	Depth int `yaml:"depth,omitempty"`
}

// Assertion type constants.
const (
	AssertTermCount    = "term_count"
	AssertMaxTerms     = "max_terms"
	AssertFrontierSize = "frontier_size"
	AssertTensorSum    = "tensor_sum"
	AssertFullyReduced = "fully_reduced"
	AssertIncomplete   = "incomplete"
	AssertStoredTerms  = "stored_terms"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// The diagram path is resolved against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the diagram path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Diagram != "" && !filepath.IsAbs(scenario.Diagram) && basePath != "" {
		scenario.Diagram = filepath.Join(basePath, scenario.Diagram)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Diagram == "" {
		return fmt.Errorf("diagram is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := os.Stat(s.Diagram); os.IsNotExist(err) {
		return fmt.Errorf("diagram file not found: %s", s.Diagram)
	}

	if s.Options.ParallelDepth < 0 {
		return fmt.Errorf("options.parallel_depth must not be negative")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTermCount, AssertIncomplete, AssertStoredTerms:
		if a.Count <= 0 {
			return fmt.Errorf("assertions[%d]: count must be positive for %s", index, a.Type)
		}
	case AssertMaxTerms:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for max_terms", index)
		}
	case AssertFrontierSize:
		if a.Depth < 0 {
			return fmt.Errorf("assertions[%d]: depth must not be negative", index)
		}
		if a.Count <= 0 {
			return fmt.Errorf("assertions[%d]: count must be positive for frontier_size", index)
		}
	case AssertTensorSum, AssertFullyReduced:
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}

	return nil
}

// needsTerms reports whether any assertion reads the saved terms.
func (s *Scenario) needsTerms() bool {
	for _, a := range s.Assertions {
		if a.Type == AssertTensorSum || a.Type == AssertStoredTerms {
			return true
		}
	}
	return false
}
