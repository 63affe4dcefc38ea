package provider

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry is a thread-safe registry of market-data providers keyed by name.
// The first registered provider becomes the default.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]MarketData
	def       string
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]MarketData)}
}

// Register adds a provider. Duplicate registrations overwrite the previous
// entry; the first registration sets the default.
func (r *Registry) Register(p MarketData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[p.Name()] = p
	if r.def == "" {
		r.def = p.Name()
	}
}

// Get returns a provider by name. An empty name selects the default.
func (r *Registry) Get(name string) (MarketData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.def
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}
	return p, nil
}

// Names returns all registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PingAll pings every registered provider concurrently and returns the
// per-provider result. Used by health checks and the status command.
func (r *Registry) PingAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	providers := make([]MarketData, 0, len(r.providers))
	for _, p := range r.providers {
		providers = append(providers, p)
	}
	r.mu.RUnlock()

	var mu sync.Mutex
	results := make(map[string]error, len(providers))

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range providers {
		p := p
		g.Go(func() error {
			err := p.Ping(ctx)
			mu.Lock()
			results[p.Name()] = err
			mu.Unlock()
			return nil // Collect per-provider outcomes; never abort the group.
		})
	}
	g.Wait() //nolint:errcheck

	return results
}

// global is the default global registry.
var global = NewRegistry()

// Global returns the default global provider registry.
func Global() *Registry {
	return global
}

// RegisterProvider adds a provider to the global registry.
func RegisterProvider(p MarketData) {
	global.Register(p)
}
