// Shared helpers for depot CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/depot/internal/snapshot"
	"github.com/mesh-intelligence/depot/pkg/depot"
	"github.com/mesh-intelligence/depot/pkg/types"
)

// loadManager restores the manager from the latest snapshot in the workspace.
// A corrupt snapshot is reported on stderr but still yields a usable empty
// manager, so read-only commands keep working.
func loadManager() (*depot.Manager, error) {
	workspace, err := resolveWorkspace()
	if err != nil {
		return nil, systemErr(fmt.Errorf("resolve workspace: %w", err))
	}

	m, err := snapshot.LoadLatest(workspace)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: snapshot unreadable, starting empty:", err)
	}
	return m, nil
}

// saveManager writes the manager to today's snapshot. Mutating commands call
// this before exiting. A failed save is reported as a warning rather than
// aborting: the mutation already happened and the next successful save will
// capture it.
func saveManager(m *depot.Manager) error {
	workspace, err := resolveWorkspace()
	if err != nil {
		return systemErr(fmt.Errorf("resolve workspace: %w", err))
	}

	if _, err := snapshot.Save(m, workspace, time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, "warning: snapshot not saved:", err)
	}
	return nil
}

// findItem resolves an item reference: first as an internal identifier, then
// as the value of the identifying "ID" property. Searches active items before
// retired ones.
func findItem(m *depot.Manager, ref string) *types.Item {
	if it := m.ItemByID(ref); it != nil {
		return it
	}
	for _, items := range [][]*types.Item{m.ActiveItems(), m.RetiredItems()} {
		for _, it := range items {
			pv, ok := it.Lookup("ID")
			if !ok || pv.IsEmpty() {
				continue
			}
			if pv.String() == ref {
				return it
			}
		}
	}
	return nil
}

// itemLabel returns the user-facing identifier of an item: the "ID" property
// value when set, the internal identifier otherwise.
func itemLabel(it *types.Item) string {
	if pv, ok := it.Lookup("ID"); ok && !pv.IsEmpty() {
		return pv.String()
	}
	return it.ID
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
