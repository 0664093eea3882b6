package preset

import (
	"testing"

	"github.com/roboco-io/ogpreview/internal/ogimage"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r == nil {
		t.Fatal("expected non-nil registry")
	}
	if r.Count() != 0 {
		t.Errorf("expected 0 presets, got %d", r.Count())
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Preset{Name: "test", Mode: ogimage.ClassicMode()})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if r.Count() != 1 {
		t.Errorf("expected 1 preset, got %d", r.Count())
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Preset{Name: "test", Mode: ogimage.ClassicMode()}); err != nil {
		t.Fatalf("failed to register first: %v", err)
	}

	err := r.Register(Preset{Name: "test", Mode: ogimage.TextMode()})
	if err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Preset{Mode: ogimage.ClassicMode()}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register(Preset{Name: "broken"}); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestRegistry_GetNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("nonexistent")
	if err == nil {
		t.Error("expected error for nonexistent preset")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Preset{Name: "test", Mode: ogimage.ClassicMode()})

	if err := r.Unregister("test"); err != nil {
		t.Fatalf("failed to unregister: %v", err)
	}
	if r.Has("test") {
		t.Error("expected preset to be removed")
	}
	if err := r.Unregister("test"); err == nil {
		t.Error("expected error for unregistering twice")
	}
}

func TestDefaultRegistry(t *testing.T) {
	names := List()

	expected := []string{Classic, Text, TextLegacy}
	if len(names) != len(expected) {
		t.Fatalf("expected %d presets, got %v", len(expected), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("expected sorted list %v, got %v", expected, names)
			break
		}
	}

	classic, err := Get(Classic)
	if err != nil {
		t.Fatalf("failed to get classic: %v", err)
	}
	if !classic.Mode.Preload {
		t.Error("expected classic preset to preload")
	}

	legacy, err := Get(TextLegacy)
	if err != nil {
		t.Fatalf("failed to get text-legacy: %v", err)
	}
	if legacy.Mode.Triggers != ogimage.SizeFields {
		t.Errorf("expected text-legacy triggers %s, got %s", ogimage.SizeFields, legacy.Mode.Triggers)
	}
}
