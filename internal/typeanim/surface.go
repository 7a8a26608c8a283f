package typeanim

import (
	"strings"
	"sync"
)

// Surface is the display target the animator writes into.
type Surface interface {
	Text() string
	SetText(text string)
}

// Resolver maps a selector to at most one surface.
type Resolver func(selector string) (Surface, bool)

// Document is an in-memory registry of surfaces addressed by selectors
// such as "#animated-text" or ".headline".
type Document struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{surfaces: make(map[string]Surface)}
}

// Register binds selector to s, replacing any earlier binding.
func (d *Document) Register(selector string, s Surface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.surfaces[strings.TrimSpace(selector)] = s
}

// Remove drops the binding for selector.
func (d *Document) Remove(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.surfaces, strings.TrimSpace(selector))
}

// Query returns the surface bound to selector. It has the Resolver
// signature so a Document can be passed to WithResolver directly.
func (d *Document) Query(selector string) (Surface, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.surfaces[strings.TrimSpace(selector)]
	return s, ok
}

// TextSurface is a plain, concurrency-safe Surface.
type TextSurface struct {
	mu   sync.RWMutex
	text string
}

func (s *TextSurface) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

func (s *TextSurface) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}
