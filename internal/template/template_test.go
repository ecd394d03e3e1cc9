package template

import (
	"os"
	"path/filepath"
	"testing"

	"template-designer/internal/item"
	"template-designer/internal/store"
	"template-designer/pkg/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := store.NewStore()
	st.SetViewport(geometry.NewRect(0, 0, 1000, 1000))

	p := item.NewPlaceholder(1, 20, 20, 200, 150)
	p.SetAngle(15)
	txt := item.NewText("Smile!", 40, 300)
	shape := item.NewShape(item.ShapeEllipse, 300, 40, 80, 80)
	if err := st.AddItems(p, txt, shape); err != nil {
		t.Fatal(err)
	}

	tpl := New("strip-4up", 600, 1800)
	tpl.CaptureItems(st)

	path := filepath.Join(t.TempDir(), "strip-4up"+Extension)
	if err := tpl.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "strip-4up" || loaded.CanvasWidth != 600 || loaded.CanvasHeight != 1800 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(loaded.Items))
	}

	dst := store.NewStore()
	dst.SetViewport(geometry.NewRect(0, 0, 1000, 1000))
	if err := loaded.ApplyTo(dst); err != nil {
		t.Fatal(err)
	}
	items := dst.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 instantiated items, got %d", len(items))
	}

	got, ok := items[0].(*item.PlaceholderItem)
	if !ok {
		t.Fatalf("z-order lost: first item is %T", items[0])
	}
	if got.Slot() != 1 || got.Left() != 20 || got.Angle() != 15 {
		t.Errorf("placeholder state lost: slot=%d left=%v angle=%v", got.Slot(), got.Left(), got.Angle())
	}
	if gotTxt, ok := items[1].(*item.TextItem); !ok || gotTxt.Text() != "Smile!" {
		t.Errorf("text item lost: %T", items[1])
	}
	if gotShape, ok := items[2].(*item.ShapeItem); !ok || gotShape.Shape() != item.ShapeEllipse {
		t.Errorf("shape item lost: %T", items[2])
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future"+Extension)
	if err := os.WriteFile(path, []byte(`{"version": 99, "items": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected version error")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken"+Extension)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestInstantiateRejectsUnknownKind(t *testing.T) {
	f := New("bad", 100, 100)
	f.Items = []item.Snapshot{{Kind: "hologram"}}
	if _, err := f.Instantiate(); err == nil {
		t.Error("expected unknown kind error")
	}
}

func TestDefaultPath(t *testing.T) {
	if got := DefaultPath("/tmp", "party"); got != "/tmp/party"+Extension {
		t.Errorf("got %q", got)
	}
	if got := DefaultPath("/tmp", ""); got != "/tmp/untitled"+Extension {
		t.Errorf("got %q", got)
	}
}
