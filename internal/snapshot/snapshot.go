// Package snapshot implements the on-disk cache of portal result pages.
// Every page flush during collection lands here before anything touches the
// database, so an interrupted run can resume from the last page written.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/schemas"
)

// Snapshot is one cached page flush: the search window it was collected for
// plus every summary row accumulated so far.
type Snapshot struct {
	WindowStart string              `json:"window_start"`
	WindowEnd   string              `json:"window_end"`
	TotalCount  int                 `json:"total_count"`
	Companies   []db.CompanySummary `json:"companies"`
}

// Store manages snapshot files under a single directory. Filenames are the
// zero-padded write timestamp in nanoseconds, so lexicographic order is
// chronological and the last name is always the authoritative snapshot.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore opens (creating if needed) the snapshot directory under cacheDir.
func NewStore(cacheDir string) (*Store, error) {
	dir := filepath.Join(cacheDir, "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the directory snapshots are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Write validates and persists a snapshot, returning the generated filename.
func (s *Store) Write(snap *Snapshot) (string, error) {
	if snap.Companies == nil {
		snap.Companies = []db.CompanySummary{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := schemas.Validate(schemas.MetadataSnapshot, data); err != nil {
		return "", fmt.Errorf("refusing to write invalid snapshot: %w", err)
	}

	name := fmt.Sprintf("%020d.json", s.now().UnixNano())
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	return name, nil
}

// Names lists the snapshot filenames in lexicographic (chronological) order.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates a single snapshot file by name.
func (s *Store) Load(name string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}
	if err := schemas.Validate(schemas.MetadataSnapshot, data); err != nil {
		return nil, fmt.Errorf("snapshot %s is invalid: %w", name, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", name, err)
	}
	return &snap, nil
}

// Latest resolves the authoritative snapshot: the lexicographically-last
// filename in the directory. Returns (nil, "", nil) when the cache is empty.
func (s *Store) Latest() (*Snapshot, string, error) {
	names, err := s.Names()
	if err != nil {
		return nil, "", err
	}
	if len(names) == 0 {
		return nil, "", nil
	}
	name := names[len(names)-1]
	snap, err := s.Load(name)
	if err != nil {
		return nil, "", err
	}
	return snap, name, nil
}

// Clear removes every snapshot file. Called once the collected window has
// been durably persisted, so the next run starts from a clean cache.
func (s *Store) Clear() error {
	names, err := s.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("failed to remove snapshot %s: %w", name, err)
		}
	}
	return nil
}
