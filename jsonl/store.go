package jsonl

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.RecordStore = (*Store)(nil)

// Store persists and retrieves EvaluationRecord values as JSONL.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads records from a JSONL file. Returns empty slice if file doesn't exist.
func (s *Store) Load(path string) ([]convbench.EvaluationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []convbench.EvaluationRecord
	err = scanLines(f, func(line []byte) error {
		var r convbench.EvaluationRecord
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Save writes records to a JSONL file, creating parent directories if needed.
func (s *Store) Save(path string, records []convbench.EvaluationRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}

	return f.Close()
}
