// Package template provides template file handling and persistence.
// A template file (.phototpl) is pure data built from item snapshots;
// the canvas core never imports this package.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"template-designer/internal/item"
	"template-designer/internal/store"
)

// Extension is the template file extension.
const Extension = ".phototpl"

// FormatVersion is the current template file format version.
const FormatVersion = 1

// File represents a designer template file.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Canvas size in canvas units and the export resolution.
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	DPI          float64 `json:"dpi,omitempty"`

	Items []item.Snapshot `json:"items"`
}

// New creates an empty template with default canvas dimensions.
func New(name string, canvasWidth, canvasHeight float64) *File {
	now := time.Now()
	return &File{
		Version:      FormatVersion,
		Name:         name,
		Created:      now,
		Modified:     now,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		DPI:          300,
	}
}

// Load loads a template from a .phototpl file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tpl File
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if tpl.Version > FormatVersion {
		return nil, fmt.Errorf("%s: unsupported format version %d", filepath.Base(path), tpl.Version)
	}
	return &tpl, nil
}

// Save saves the template to a file, bumping the modified time.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CaptureItems replaces the template's item list with snapshots of the
// store's items in z-order.
func (f *File) CaptureItems(st *store.Store) {
	items := st.Items()
	f.Items = make([]item.Snapshot, 0, len(items))
	for _, it := range items {
		f.Items = append(f.Items, it.Snapshot())
	}
}

// Instantiate rebuilds the template's items. The order of the returned
// slice is the template's z-order.
func (f *File) Instantiate() ([]item.Item, error) {
	items := make([]item.Item, 0, len(f.Items))
	for i, snap := range f.Items {
		it, err := item.FromSnapshot(snap)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// ApplyTo resets the store to the template's items. Partially visible
// items materialize like any other incremental add.
func (f *File) ApplyTo(st *store.Store) error {
	items, err := f.Instantiate()
	if err != nil {
		return err
	}
	return st.ResetItems(items, true)
}

// DefaultPath derives a template path from a name, placing it next to
// an existing template when one is open.
func DefaultPath(dir, name string) string {
	if name == "" {
		name = "untitled"
	}
	return filepath.Join(dir, name+Extension)
}
