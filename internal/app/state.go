// Package app provides the designer document state, event bus, and
// wiring between the canvas core packages.
package app

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"template-designer/internal/adorner"
	"template-designer/internal/item"
	"template-designer/internal/manip"
	"template-designer/internal/render"
	"template-designer/internal/selection"
	"template-designer/internal/store"
	"template-designer/internal/template"
	"template-designer/pkg/geometry"
)

// Zoom limits as fractions: 0.001 = 0.1%, 500 = 50000%.
const (
	MinZoom     = 0.001
	MaxZoom     = 500.0
	DefaultZoom = 1.0
)

// Default canvas size in canvas units (a 2x6" photo strip at 96 units
// per inch).
const (
	DefaultCanvasWidth  = 192.0
	DefaultCanvasHeight = 576.0
)

// EventType identifies different application events.
type EventType int

const (
	EventTemplateLoaded EventType = iota
	EventTemplateSaved
	EventItemsChanged
	EventSelectionChanged
	EventZoomChanged
	EventModified
	EventExportDone
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Config tunes the document wiring.
type Config struct {
	PoolCapacity            int
	SnapStep                float64
	InstantPreviewThreshold int

	// Schedule defers coalesced selection notifications; nil means
	// notify synchronously (headless use and tests).
	Schedule func(func())
}

// State holds the open document and the wired canvas core. All
// dependencies are passed explicitly at construction.
type State struct {
	mu sync.RWMutex

	TemplatePath string
	Name         string
	Modified     bool
	CanvasSize   geometry.Size
	DPI          float64

	zoom float64

	Store     *store.Store
	Selection *selection.Manager
	Engine    *manip.Engine
	Adorners  *adorner.Manager

	listeners map[EventType][]EventListener
}

// NewState creates a wired document with an empty template.
func NewState(cfg Config) *State {
	st := store.NewStore()
	if cfg.PoolCapacity > 0 {
		// Positive capacities never fail validation.
		_ = st.SetPoolCapacity(cfg.PoolCapacity)
	}
	sel := selection.NewManager(st, cfg.Schedule)
	eng := manip.NewEngine(st, sel, manip.Config{
		SnapStep:                cfg.SnapStep,
		InstantPreviewThreshold: cfg.InstantPreviewThreshold,
	})
	ad := adorner.NewManager()

	s := &State{
		Name:       "untitled",
		CanvasSize: geometry.NewSize(DefaultCanvasWidth, DefaultCanvasHeight),
		DPI:        300,
		zoom:       DefaultZoom,
		Store:      st,
		Selection:  sel,
		Engine:     eng,
		Adorners:   ad,
		listeners:  make(map[EventType][]EventListener),
	}

	sel.OnChanged(func(items []item.Item) {
		ad.SyncSelection(items)
		s.Emit(EventSelectionChanged, items)
	})
	eng.OnGestureStarted(ad.GestureStarted)
	eng.OnGestureEnded(func(kind manip.GestureKind, it item.Item) {
		ad.GestureEnded(kind, it)
		s.SetModified(true)
	})
	st.OnChanged(func() {
		s.Emit(EventItemsChanged, nil)
	})

	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the document as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// Zoom returns the current zoom fraction (1.0 = 100%).
func (s *State) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zoom
}

// SetZoom clamps and applies a zoom fraction, rescaling the adorners.
func (s *State) SetZoom(zoom float64) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	s.mu.Lock()
	if zoom == s.zoom {
		s.mu.Unlock()
		return
	}
	s.zoom = zoom
	s.mu.Unlock()

	s.Adorners.SetZoom(zoom)
	s.Emit(EventZoomChanged, zoom)
}

// NewTemplate resets the document to an empty template.
func (s *State) NewTemplate(name string, canvas geometry.Size) {
	s.Selection.Clear()
	s.Store.Clear()

	s.mu.Lock()
	s.TemplatePath = ""
	s.Name = name
	s.CanvasSize = canvas
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventTemplateLoaded, "")
}

// LoadTemplate loads a template from the specified path.
func (s *State) LoadTemplate(path string) error {
	tpl, err := template.Load(path)
	if err != nil {
		return err
	}

	s.Selection.Clear()
	if err := tpl.ApplyTo(s.Store); err != nil {
		return err
	}

	s.mu.Lock()
	s.TemplatePath = path
	s.Name = tpl.Name
	s.CanvasSize = geometry.NewSize(tpl.CanvasWidth, tpl.CanvasHeight)
	if tpl.DPI > 0 {
		s.DPI = tpl.DPI
	}
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventTemplateLoaded, path)
	return nil
}

// SaveTemplate saves the document to the specified path.
func (s *State) SaveTemplate(path string) error {
	s.mu.RLock()
	name := s.Name
	if base := strings.TrimSuffix(filepath.Base(path), template.Extension); base != "" {
		name = base
	}
	tpl := template.New(name, s.CanvasSize.Width, s.CanvasSize.Height)
	tpl.DPI = s.DPI
	s.mu.RUnlock()

	tpl.CaptureItems(s.Store)
	if err := tpl.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.TemplatePath = path
	s.Name = name
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventTemplateSaved, path)
	return nil
}

// AddItem adds an item to the document and selects it.
func (s *State) AddItem(it item.Item) error {
	if err := s.Store.AddItems(it); err != nil {
		return err
	}
	if err := s.Selection.Replace([]item.Item{it}); err != nil {
		return err
	}
	s.SetModified(true)
	return nil
}

// DuplicateSelection clones every selected item and selects the
// clones. Box clones land offset by the fixed duplicate translation.
func (s *State) DuplicateSelection() error {
	selected := s.Selection.Selected()
	if len(selected) == 0 {
		return nil
	}
	clones := make([]item.Item, 0, len(selected))
	for _, it := range selected {
		clones = append(clones, it.Clone())
	}
	if err := s.Store.AddItems(clones...); err != nil {
		return err
	}
	if err := s.Selection.Replace(clones); err != nil {
		return err
	}
	s.SetModified(true)
	return nil
}

// DeleteSelection removes every selected item from the document.
func (s *State) DeleteSelection() {
	selected := s.Selection.Selected()
	if len(selected) == 0 {
		return
	}
	s.Store.RemoveItems(selected...)
	s.SetModified(true)
}

// Export renders the document to a PNG file.
func (s *State) Export(path string, opts render.Options) error {
	s.mu.RLock()
	canvas := s.CanvasSize
	if opts.DPI <= 0 {
		opts.DPI = s.DPI
	}
	s.mu.RUnlock()

	img, err := render.Render(s.Store, canvas, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}

	s.Emit(EventExportDone, path)
	return nil
}
