package challenge

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Challenge IDs in the built-in bank, in teaching order.
const (
	Sequences    = "sequences"
	Loops        = "loops"
	Conditionals = "conditionals"
	Measurements = "measurements"
	Debugging    = "debugging"
)

//go:embed challenges.yaml
var bankYAML []byte

var bank []Spec

func init() {
	specs, err := parseBank(bankYAML)
	if err != nil {
		panic(err)
	}
	bank = specs
}

func parseBank(data []byte) ([]Spec, error) {
	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse challenge bank: %w", err)
	}
	seen := make(map[string]bool)
	for _, s := range specs {
		if seen[s.ID] {
			return nil, fmt.Errorf("parse challenge bank: duplicate challenge %q", s.ID)
		}
		seen[s.ID] = true
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("parse challenge bank: %w", err)
		}
	}
	return specs, nil
}

// Bank returns every built-in challenge in teaching order.
func Bank() []Spec {
	out := make([]Spec, len(bank))
	for i, s := range bank {
		out[i] = s.clone()
	}
	return out
}

// Lookup finds a built-in challenge by ID.
func Lookup(id string) (Spec, bool) {
	for _, s := range bank {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Spec{}, false
}
