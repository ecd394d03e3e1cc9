package app

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"template-designer/internal/item"
	"template-designer/internal/render"
	"template-designer/pkg/geometry"
)

func newTestState() *State {
	s := NewState(Config{})
	s.Store.SetViewport(geometry.NewRect(0, 0, 2000, 2000))
	return s
}

func TestAddItemSelects(t *testing.T) {
	s := newTestState()
	p := item.NewPlaceholder(1, 10, 10, 100, 100)
	if err := s.AddItem(p); err != nil {
		t.Fatal(err)
	}
	if s.Selection.Primary() != item.Item(p) {
		t.Error("new item must become the primary selection")
	}
	if !s.Modified {
		t.Error("adding must mark the document modified")
	}
	if len(s.Adorners.Adorners()) != 1 {
		t.Error("selection must grow an adorner")
	}
}

func TestDuplicateSelectionOffsetsClones(t *testing.T) {
	s := newTestState()
	p := item.NewPlaceholder(1, 50, 50, 100, 100)
	if err := s.AddItem(p); err != nil {
		t.Fatal(err)
	}
	if err := s.DuplicateSelection(); err != nil {
		t.Fatal(err)
	}
	if s.Store.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", s.Store.Len())
	}
	dup, ok := s.Selection.Primary().(*item.PlaceholderItem)
	if !ok {
		t.Fatalf("primary is %T", s.Selection.Primary())
	}
	if dup == p {
		t.Fatal("duplicate must select the clone, not the original")
	}
	if dup.Left() != 50+item.DuplicateOffset || dup.Top() != 50+item.DuplicateOffset {
		t.Errorf("clone at (%v,%v)", dup.Left(), dup.Top())
	}
}

func TestDeleteSelectionShrinksStoreAndSelection(t *testing.T) {
	s := newTestState()
	a := item.NewPlaceholder(1, 10, 10, 50, 50)
	b := item.NewPlaceholder(2, 100, 10, 50, 50)
	if err := s.Store.AddItems(a, b); err != nil {
		t.Fatal(err)
	}
	if err := s.Selection.Replace([]item.Item{a}); err != nil {
		t.Fatal(err)
	}

	s.DeleteSelection()
	if s.Store.Len() != 1 {
		t.Fatalf("expected 1 item left, got %d", s.Store.Len())
	}
	if s.Selection.Count() != 0 {
		t.Error("deleting the selection must empty it")
	}
	if len(s.Adorners.Adorners()) != 0 {
		t.Error("adorners must follow the emptied selection")
	}
}

func TestZoomClampAndEvent(t *testing.T) {
	s := newTestState()
	var got []float64
	s.On(EventZoomChanged, func(data interface{}) {
		got = append(got, data.(float64))
	})

	s.SetZoom(2)
	s.SetZoom(2) // no-op
	s.SetZoom(1e9)
	s.SetZoom(0)

	if s.Zoom() != MinZoom {
		t.Errorf("zoom %v, want clamp to %v", s.Zoom(), MinZoom)
	}
	want := []float64{2, MaxZoom, MinZoom}
	if len(got) != len(want) {
		t.Fatalf("events %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSaveLoadTemplateRoundTrip(t *testing.T) {
	s := newTestState()
	if err := s.AddItem(item.NewPlaceholder(1, 20, 20, 100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddItem(item.NewText("Say cheese", 20, 140)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "wedding.phototpl")
	if err := s.SaveTemplate(path); err != nil {
		t.Fatal(err)
	}
	if s.Modified {
		t.Error("saving must clear the modified flag")
	}
	if s.Name != "wedding" {
		t.Errorf("name %q", s.Name)
	}

	loaded := newTestState()
	events := 0
	loaded.On(EventTemplateLoaded, func(interface{}) { events++ })
	if err := loaded.LoadTemplate(path); err != nil {
		t.Fatal(err)
	}
	if loaded.Store.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", loaded.Store.Len())
	}
	if loaded.Name != "wedding" || events != 1 {
		t.Errorf("name %q, events %d", loaded.Name, events)
	}
	if loaded.Selection.Count() != 0 {
		t.Error("loading must not carry a selection")
	}
}

func TestExportWritesPNG(t *testing.T) {
	s := newTestState()
	s.CanvasSize = geometry.NewSize(100, 60)
	s.DPI = 96
	shape := item.NewShape(item.ShapeRectangle, 10, 10, 40, 20)
	if err := s.AddItem(shape); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	done := 0
	s.On(EventExportDone, func(interface{}) { done++ })
	if err := s.Export(path, render.Options{}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 60 {
		t.Errorf("exported size %v", img.Bounds())
	}
	if done != 1 {
		t.Errorf("export events %d", done)
	}
}

func TestModifiedEventFiresOnTransition(t *testing.T) {
	s := newTestState()
	count := 0
	s.On(EventModified, func(interface{}) { count++ })

	s.SetModified(true)
	s.SetModified(true) // no transition
	s.SetModified(false)

	if count != 2 {
		t.Errorf("expected 2 transitions, got %d", count)
	}
}
