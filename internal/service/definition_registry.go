package service

import (
	"fmt"
	"sort"
	"sync"

	"gridboard/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Component Registry: pluggable component definitions
// ─────────────────────────────────────────────────────────────

// ComponentPlugin is the Go-side contract for a component type. It supplies
// the definition used for size limits and placement.
type ComponentPlugin interface {
	Definition() domain.ComponentDefinition
}

// ConfigDefaulter is implemented by plugins that seed a config on placement.
type ConfigDefaulter interface {
	DefaultConfig() domain.Config
}

// DefinitionRegistry manages registered component plugins. It implements
// domain.DefinitionLookup.
type DefinitionRegistry struct {
	mu      sync.RWMutex
	plugins map[string]ComponentPlugin
}

func NewDefinitionRegistry() *DefinitionRegistry {
	return &DefinitionRegistry{plugins: make(map[string]ComponentPlugin)}
}

// Register adds a plugin to the registry. Panics on duplicate registration.
func (r *DefinitionRegistry) Register(p ComponentPlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := p.Definition().Type
	if _, exists := r.plugins[t]; exists {
		panic(fmt.Sprintf("component registry: duplicate registration for type %q", t))
	}
	r.plugins[t] = p
}

func (r *DefinitionRegistry) Definition(componentType string) (*domain.ComponentDefinition, bool) {
	r.mu.RLock()
	p, ok := r.plugins[componentType]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	def := p.Definition()
	def.MinSize = copySize(def.MinSize)
	def.MaxSize = copySize(def.MaxSize)
	return &def, true
}

func copySize(s *domain.Size) *domain.Size {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// DefaultConfig returns the plugin's starting config for componentType, if any.
func (r *DefinitionRegistry) DefaultConfig(componentType string) domain.Config {
	r.mu.RLock()
	p, ok := r.plugins[componentType]
	r.mu.RUnlock()
	if d, ok2 := p.(ConfigDefaulter); ok && ok2 {
		return d.DefaultConfig().Clone()
	}
	return nil
}

// List returns every definition sorted by type.
func (r *DefinitionRegistry) List() []domain.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ComponentDefinition, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p.Definition())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
