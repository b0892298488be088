package convbench

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownProvider is returned when no backend is registered under a name.
var ErrUnknownProvider = errors.New("unknown model provider")

// ProviderConfig is the explicit configuration handed to backend constructors.
type ProviderConfig struct {
	Model       string
	APIKey      string
	BaseURL     string   // Empty uses the backend default
	Temperature *float32 // Nil uses the backend default
	TopP        *float32
	MaxTokens   int // 0 uses the backend default
}

// ProviderFactory constructs a ModelProvider.
type ProviderFactory func(ctx context.Context, cfg ProviderConfig) (ModelProvider, error)

// JudgeFactory constructs a Judge.
type JudgeFactory func(ctx context.Context, cfg ProviderConfig) (Judge, error)

// Backend bundles the constructors for one model backend.
// A nil NewJudge falls back to a ProviderJudge over NewProvider.
type Backend struct {
	NewProvider ProviderFactory
	NewJudge    JudgeFactory
}

// Registry selects model backends by name.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register adds or replaces a backend.
func (r *Registry) Register(name string, b Backend) {
	r.backends[name] = b
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Provider constructs the named backend's ModelProvider.
func (r *Registry) Provider(ctx context.Context, name string, cfg ProviderConfig) (ModelProvider, error) {
	b, ok := r.backends[name]
	if !ok || b.NewProvider == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownProvider, name, r.Names())
	}
	return b.NewProvider(ctx, cfg)
}

// Judge constructs the named backend's Judge.
func (r *Registry) Judge(ctx context.Context, name string, cfg ProviderConfig) (Judge, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownProvider, name, r.Names())
	}
	if b.NewJudge != nil {
		return b.NewJudge(ctx, cfg)
	}
	provider, err := r.Provider(ctx, name, cfg)
	if err != nil {
		return nil, err
	}
	return NewProviderJudge(provider), nil
}
