package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named sequence of registry calls.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// Step is one registry call.
type Step struct {
	// Op is the operation name, see the Op* constants.
	Op string `yaml:"op"`

	// Caller is the authenticated identity for mutations.
	// Empty means the owner itself.
	Caller string `yaml:"caller,omitempty"`

	Owner  string   `yaml:"owner"`
	Deck   string   `yaml:"deck,omitempty"`
	Slide  string   `yaml:"slide,omitempty"`
	Slides []string `yaml:"slides,omitempty"`

	// Expect is optional. Without it the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a step.
// Only the fields that are set are checked.
type Expect struct {
	Error   string  `yaml:"error,omitempty"`
	Output  *string `yaml:"output,omitempty"`
	Count   *int    `yaml:"count,omitempty"`
	Absent  bool    `yaml:"absent,omitempty"`
	Created *bool   `yaml:"created,omitempty"`
	Length  *int    `yaml:"length,omitempty"`
}

// Operation names.
const (
	OpCreateDeck     = "create_deck"
	OpAppendSlide    = "append_slide"
	OpAppendSlides   = "append_slides"
	OpReadSlides     = "read_slides"
	OpReadDeckNames  = "read_deck_names"
	OpDeckSlideCount = "deck_slide_count"
	OpDeckCount      = "deck_count"
)

// Outcome names. Error outcomes are the lower-cased deck.ErrorCode.
const (
	OutcomeOK              = "ok"
	OutcomeUnauthorized    = "unauthorized"
	OutcomeNotFound        = "not_found"
	OutcomeInvalidArgument = "invalid_argument"
)

var validOps = map[string]bool{
	OpCreateDeck:     true,
	OpAppendSlide:    true,
	OpAppendSlides:   true,
	OpReadSlides:     true,
	OpReadDeckNames:  true,
	OpDeckSlideCount: true,
	OpDeckCount:      true,
}

var validErrors = map[string]bool{
	OutcomeUnauthorized:    true,
	OutcomeNotFound:        true,
	OutcomeInvalidArgument: true,
}

// isMutation reports whether op runs with a caller identity.
func isMutation(op string) bool {
	return op == OpCreateDeck || op == OpAppendSlide || op == OpAppendSlides
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
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

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if !validOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if !isMutation(step.Op) && step.Caller != "" {
			return fmt.Errorf("steps[%d]: %s is a public read and takes no caller", i, step.Op)
		}
		if step.Op != OpAppendSlide && step.Slide != "" {
			return fmt.Errorf("steps[%d]: slide is only valid for %s", i, OpAppendSlide)
		}
		if step.Op != OpAppendSlides && step.Slides != nil {
			return fmt.Errorf("steps[%d]: slides is only valid for %s", i, OpAppendSlides)
		}
		if step.Expect != nil && step.Expect.Error != "" && !validErrors[step.Expect.Error] {
			return fmt.Errorf("steps[%d]: unknown expected error %q", i, step.Expect.Error)
		}
	}

	return nil
}
