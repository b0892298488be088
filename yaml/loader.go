// Package yaml loads hand-written test suites from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/convbench"
	yamlv3 "gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ convbench.TestCaseLoader = (*Loader)(nil)

type suite struct {
	Cases []testCase `yaml:"cases"`
}

type testCase struct {
	ID             int              `yaml:"id"`
	Axis           string           `yaml:"axis"`
	Conversation   []convbench.Turn `yaml:"conversation"`
	TargetQuestion string           `yaml:"target_question"`
	PassCriteria   string           `yaml:"pass_criteria"`
}

// Loader loads TestCase records from a YAML document of the form:
//
//	cases:
//	  - id: 1
//	    axis: COHERENCE
//	    conversation:
//	      - role: user
//	        content: ...
//	    target_question: ...
//	    pass_criteria: "YES"
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the suite at path. Unknown keys are rejected.
func (l *Loader) Load(path string) ([]convbench.TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s suite
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml: %s: %w", path, err)
	}

	cases := make([]convbench.TestCase, len(s.Cases))
	for i, c := range s.Cases {
		cases[i] = convbench.TestCase{
			ID:             c.ID,
			Axis:           c.Axis,
			Turns:          c.Conversation,
			TargetQuestion: c.TargetQuestion,
			PassCriteria:   convbench.Verdict(c.PassCriteria),
		}
	}
	return cases, nil
}
