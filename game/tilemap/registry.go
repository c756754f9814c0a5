package tilemap

import (
	"sort"
	"sync"
)

// Well-known layer names, drawn bottom to top in this order.
const (
	LayerBase             = "base"
	LayerOverlay          = "overlay"
	LayerPipes            = "pipes"
	LayerPipesEngineering = "pipes_engineering"
)

// DrawOrder lists the standard layers bottom to top
var DrawOrder = []string{LayerBase, LayerOverlay, LayerPipes, LayerPipesEngineering}

// Registry resolves layer names to live layers. A name that is not
// registered is a missing visual target.
type Registry struct {
	layers map[string]Layer
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		layers: make(map[string]Layer),
	}
}

// Register binds name to layer, replacing any previous binding
func (r *Registry) Register(name string, layer Layer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layers[name] = layer
}

// Unregister removes the binding for name
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.layers, name)
}

// Get returns the layer bound to name
func (r *Registry) Get(name string) (Layer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.layers[name]
	return l, ok
}

// TileLayer returns the layer bound to name when it is a *TileLayer.
func (r *Registry) TileLayer(name string) (*TileLayer, bool) {
	l, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	tl, ok := l.(*TileLayer)
	return tl, ok
}

// Names returns the registered names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.layers))
	for name := range r.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
