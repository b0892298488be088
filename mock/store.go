package mock

import "github.com/fwojciec/convbench"

// Compile-time interface verification.
var (
	_ convbench.TestCaseLoader = (*TestCaseLoader)(nil)
	_ convbench.ResponseLoader = (*ResponseLoader)(nil)
	_ convbench.ResponseSaver  = (*ResponseSaver)(nil)
	_ convbench.RecordStore    = (*RecordStore)(nil)
)

// TestCaseLoader is a mock implementation of convbench.TestCaseLoader.
type TestCaseLoader struct {
	LoadFn func(path string) ([]convbench.TestCase, error)
}

func (l *TestCaseLoader) Load(path string) ([]convbench.TestCase, error) {
	return l.LoadFn(path)
}

// ResponseLoader is a mock implementation of convbench.ResponseLoader.
type ResponseLoader struct {
	LoadFn func(path string) (convbench.ResponseSet, error)
}

func (l *ResponseLoader) Load(path string) (convbench.ResponseSet, error) {
	return l.LoadFn(path)
}

// ResponseSaver is a mock implementation of convbench.ResponseSaver.
type ResponseSaver struct {
	SaveFn func(path string, responses convbench.ResponseSet) error
}

func (s *ResponseSaver) Save(path string, responses convbench.ResponseSet) error {
	return s.SaveFn(path, responses)
}

// RecordStore is a mock implementation of convbench.RecordStore.
type RecordStore struct {
	LoadFn func(path string) ([]convbench.EvaluationRecord, error)
	SaveFn func(path string, records []convbench.EvaluationRecord) error
}

func (s *RecordStore) Load(path string) ([]convbench.EvaluationRecord, error) {
	return s.LoadFn(path)
}

func (s *RecordStore) Save(path string, records []convbench.EvaluationRecord) error {
	return s.SaveFn(path, records)
}
