package savegame

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

// openTestStore points the data directory at a temp dir.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	s, err := Open("balls_test")
	if err != nil {
		t.Skipf("cannot open data dir: %v", err)
	}
	return s
}

func TestValidSlot(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"quicksave", true},
		{"run-2_final", true},
		{"A1", true},
		{"", false},
		{"-leading", false},
		{"has space", false},
		{"../escape", false},
		{"dot.ted", false},
	}
	for _, tt := range tests {
		if got := ValidSlot(tt.name); got != tt.want {
			t.Errorf("ValidSlot(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStoreSlots(t *testing.T) {
	s := openTestStore(t)

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() on a fresh store: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("fresh store lists %v", names)
	}

	record := []byte{2, 0, 0, 0, 1, 2, 3}
	if err := s.Save("quicksave", record); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Save("alpha", []byte{9}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := s.Load("quicksave")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !bytes.Equal(got, record) {
		t.Errorf("Load() = %v, want %v", got, record)
	}
	if !s.Exists("quicksave") || s.Exists("missing") {
		t.Error("Exists mismatch")
	}

	names, err = s.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if !slices.Equal(names, []string{"alpha", "quicksave"}) {
		t.Errorf("List() = %v", names)
	}

	if err := s.Delete("alpha"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if s.Exists("alpha") {
		t.Error("deleted slot still exists")
	}
}

func TestStoreMissingAndInvalid(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Load("nothing"); !errors.Is(err, ErrNoSlot) {
		t.Errorf("Load(missing) error = %v, want ErrNoSlot", err)
	}
	if err := s.Delete("nothing"); !errors.Is(err, ErrNoSlot) {
		t.Errorf("Delete(missing) error = %v, want ErrNoSlot", err)
	}
	if err := s.Save("../x", []byte{1}); err == nil {
		t.Error("Save with an invalid name should fail")
	}
}

func TestRecordFiles(t *testing.T) {
	dir := t.TempDir()
	record := []byte("record")

	path, err := WriteFile(filepath.Join(dir, "sub", "run"), record)
	if err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if filepath.Ext(path) != FileExt {
		t.Errorf("WriteFile() path = %s, want %s extension", path, FileExt)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !bytes.Equal(got, record) {
		t.Errorf("ReadFile() = %q", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.balls")); err == nil {
		t.Error("ReadFile(missing) should fail")
	}

	if got := SlotFromPath("/tmp/x/run-1.balls"); got != "run-1" {
		t.Errorf("SlotFromPath() = %q", got)
	}
}
