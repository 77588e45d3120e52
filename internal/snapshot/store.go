package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/depot/pkg/depot"
)

// Snapshot files live in one subdirectory of the workspace, one file per
// calendar day. The date prefix makes lexicographic order chronological.
const (
	DirName    = "snapshots"
	fileSuffix = "_save.json.gz"
	datePrefix = "2006_01_02"
)

// Dir returns the snapshot directory under the given workspace path.
func Dir(workspace string) string {
	return filepath.Join(workspace, DirName)
}

// FileName returns the snapshot file name for the given day.
func FileName(day time.Time) string {
	return day.Format(datePrefix) + fileSuffix
}

// Save serializes the manager to the workspace's snapshot for the given day,
// creating the snapshot directory on first use. The write is atomic: a
// partially written snapshot never replaces the previous one. Returns the
// path written.
func Save(m *depot.Manager, workspace string, day time.Time) (string, error) {
	dir := Dir(workspace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot dir: %w", err)
	}

	data, err := json.Marshal(encode(m))
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compressing snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compressing snapshot: %w", err)
	}

	path := filepath.Join(dir, FileName(day))
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes data using the temp-file, fsync, rename pattern.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming snapshot: %w", err)
	}
	return nil
}

// Latest returns the path of the most recent snapshot in the workspace, or
// "" when none exists. Selection is lexicographic, which is chronological
// under the naming convention.
func Latest(workspace string) string {
	entries, err := os.ReadDir(Dir(workspace))
	if err != nil {
		return ""
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileSuffix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(Dir(workspace), names[len(names)-1])
}

// Load reconstructs a manager from one snapshot file. Any structural failure
// (unreadable file, broken compression, invalid top-level JSON) fails the
// whole load; within a readable document, unresolvable records are dropped.
func Load(path string) (*depot.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}
	defer zr.Close()

	var doc document
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return decode(&doc), nil
}

// LoadLatest loads the most recent snapshot of the workspace. The returned
// manager is always usable: when no snapshot exists or the latest one is
// structurally corrupt, a fresh seeded manager is returned alongside the
// load error (nil in the no-snapshot case) so the caller can warn and keep
// running with in-memory state.
func LoadLatest(workspace string) (*depot.Manager, error) {
	path := Latest(workspace)
	if path == "" {
		return depot.NewSeededManager(), nil
	}
	m, err := Load(path)
	if err != nil {
		return depot.NewSeededManager(), err
	}
	return m, nil
}
