package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.Judge = (*Judge)(nil)

// Judge wraps a Judge with file-based caching of valid judgments.
//
// The namespace separates caches of different judge models sharing one
// directory. Judge errors are never cached.
type Judge struct {
	inner     convbench.Judge
	cacheDir  string
	namespace string
}

// NewJudge creates a new caching judge.
func NewJudge(inner convbench.Judge, cacheDir, namespace string) *Judge {
	return &Judge{
		inner:     inner,
		cacheDir:  cacheDir,
		namespace: namespace,
	}
}

// Judge returns a cached judgment or delegates to the inner judge.
func (j *Judge) Judge(ctx context.Context, response, targetQuestion string) (*convbench.Judgment, error) {
	hash := j.hash(response, targetQuestion)

	if cached, err := j.loadFromCache(hash); err == nil {
		return cached, nil
	}

	result, err := j.inner.Judge(ctx, response, targetQuestion)
	if err != nil {
		return nil, err
	}

	// Best-effort.
	if result != nil && result.Validate() == nil {
		_ = j.saveToCache(hash, result)
	}

	return result, nil
}

func (j *Judge) hash(response, targetQuestion string) string {
	data, _ := json.Marshal([]string{j.namespace, response, targetQuestion})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (j *Judge) cachePath(hash string) string {
	return filepath.Join(j.cacheDir, "judgments", hash+".json")
}

func (j *Judge) loadFromCache(hash string) (*convbench.Judgment, error) {
	data, err := os.ReadFile(j.cachePath(hash))
	if err != nil {
		return nil, err
	}
	return convbench.ParseJudgment(data)
}

func (j *Judge) saveToCache(hash string, result *convbench.Judgment) error {
	path := j.cachePath(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
