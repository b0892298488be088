package jsonl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var (
	_ convbench.ResponseLoader = (*ResponseLoader)(nil)
	_ convbench.ResponseSaver  = (*Saver)(nil)
)

// responseLine is the on-disk shape of one question's responses.
type responseLine struct {
	QuestionID int      `json:"QUESTION_ID"`
	Response   []string `json:"RESPONSE"`
}

// ResponseLoader loads precomputed responses from JSONL files.
type ResponseLoader struct{}

// NewResponseLoader creates a new ResponseLoader.
func NewResponseLoader() *ResponseLoader {
	return &ResponseLoader{}
}

// Load reads one {"QUESTION_ID", "RESPONSE"} object per line. A later line for
// the same question replaces an earlier one.
func (l *ResponseLoader) Load(path string) (convbench.ResponseSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	responses := make(convbench.ResponseSet)
	err = scanLines(f, func(line []byte) error {
		var r responseLine
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		if r.Response == nil {
			return fmt.Errorf("question %d: missing RESPONSE", r.QuestionID)
		}
		responses[r.QuestionID] = r.Response
		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// Saver writes responses to JSONL files in the shape ResponseLoader reads.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save writes responses ordered by ascending question id, replacing any
// existing file and creating parent directories if needed.
func (s *Saver) Save(path string, responses convbench.ResponseSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ids := make([]int, 0, len(responses))
	for id := range responses {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	enc := json.NewEncoder(f)
	for _, id := range ids {
		if err := enc.Encode(responseLine{QuestionID: id, Response: responses[id]}); err != nil {
			return err
		}
	}

	return f.Close()
}
