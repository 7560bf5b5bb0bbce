// Package savegame stores board records in named slots inside the
// per-user data directory, and reads or writes standalone record files.
package savegame

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

// FileExt is the conventional extension of an exported record.
const FileExt = ".balls"

// slotsObject groups every slot under one gdata object.
const slotsObject = "slots"

var (
	// ErrNoSlot is returned when loading or deleting a slot that does not exist.
	ErrNoSlot = errors.New("savegame: no such slot")

	slotName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
)

// Store is a set of named save slots.
type Store struct {
	data *gdata.Manager
}

// Open opens (creating if needed) the data directory for appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("savegame: open data dir %q: %w", appName, err)
	}
	return &Store{data: m}, nil
}

// ValidSlot reports whether name can be used as a slot name.
func ValidSlot(name string) bool {
	return slotName.MatchString(name)
}

func checkSlot(name string) error {
	if !ValidSlot(name) {
		return fmt.Errorf("savegame: invalid slot name %q", name)
	}
	return nil
}

// Save writes record to the slot, replacing any previous content.
func (s *Store) Save(slot string, record []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := s.data.SaveObjectProp(slotsObject, slot, record); err != nil {
		return fmt.Errorf("savegame: save %q: %w", slot, err)
	}
	return nil
}

// Load returns the record stored in the slot.
func (s *Store) Load(slot string) ([]byte, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	if !s.data.ObjectPropExists(slotsObject, slot) {
		return nil, fmt.Errorf("%w: %q", ErrNoSlot, slot)
	}
	data, err := s.data.LoadObjectProp(slotsObject, slot)
	if err != nil {
		return nil, fmt.Errorf("savegame: load %q: %w", slot, err)
	}
	return data, nil
}

// Exists reports whether the slot holds a record.
func (s *Store) Exists(slot string) bool {
	return ValidSlot(slot) && s.data.ObjectPropExists(slotsObject, slot)
}

// Delete removes the slot.
func (s *Store) Delete(slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if !s.data.ObjectPropExists(slotsObject, slot) {
		return fmt.Errorf("%w: %q", ErrNoSlot, slot)
	}
	if err := s.data.DeleteObjectProp(slotsObject, slot); err != nil {
		return fmt.Errorf("savegame: delete %q: %w", slot, err)
	}
	return nil
}

// List returns the slot names in lexical order.
func (s *Store) List() ([]string, error) {
	if !s.data.ObjectExists(slotsObject) {
		return nil, nil
	}
	names, err := s.data.ListObjectProps(slotsObject)
	if err != nil {
		return nil, fmt.Errorf("savegame: list slots: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// ReadFile reads a record file from disk.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("savegame: read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes a record file, adding FileExt when path has no
// extension. It returns the path actually written.
func WriteFile(path string, record []byte) (string, error) {
	if filepath.Ext(path) == "" {
		path += FileExt
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("savegame: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, record, 0o600); err != nil {
		return "", fmt.Errorf("savegame: write %s: %w", path, err)
	}
	return path, nil
}

// SlotFromPath derives a slot name from a file name, e.g. "run-1.balls"
// gives "run-1".
func SlotFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
