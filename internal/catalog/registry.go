package catalog

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry loads each named catalog once and keeps its index for the
// lifetime of the registry. A fetch or decode failure yields an empty index.
type Registry struct {
	source Source
	logger *slog.Logger

	mu      sync.RWMutex
	indexes map[string]*Index
	loads   singleflight.Group
}

func NewRegistry(source Source, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		source:  source,
		logger:  logger,
		indexes: make(map[string]*Index),
	}
}

// Get returns the index for name, loading it on first use. Concurrent first
// calls for the same name share a single fetch.
func (r *Registry) Get(ctx context.Context, name string) *Index {
	r.mu.RLock()
	idx, ok := r.indexes[name]
	r.mu.RUnlock()
	if ok {
		return idx
	}

	// The load outlives any one caller's cancellation because its result is shared.
	loadCtx := context.WithoutCancel(ctx)
	v, _, _ := r.loads.Do(name, func() (any, error) {
		r.mu.RLock()
		idx, ok := r.indexes[name]
		r.mu.RUnlock()
		if ok {
			return idx, nil
		}

		idx = r.load(loadCtx, name)

		r.mu.Lock()
		r.indexes[name] = idx
		r.mu.Unlock()
		return idx, nil
	})
	return v.(*Index)
}

func (r *Registry) load(ctx context.Context, name string) *Index {
	var entries []Entry
	if r.source != nil {
		var err error
		entries, err = r.source.Fetch(ctx, name)
		if err != nil {
			r.logger.Warn("catalog load failed", "catalog", name, "error", err)
			entries = nil
		}
	}
	idx := NewIndex(name, entries, r.logger)
	r.logger.Info("catalog loaded", "catalog", name, "items", idx.Len())
	return idx
}

// Loaded returns the names of the catalogs loaded so far.
func (r *Registry) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.indexes))
	for n := range r.indexes {
		names = append(names, n)
	}
	return names
}
