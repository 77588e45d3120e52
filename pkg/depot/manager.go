// Package depot implements the aggregate root of the loan-tracking core. The
// Manager owns the category catalog, the property registry, the active and
// retired item and person sets, and the loan ledger, and is the single
// mutation API surface consumed by the view layer. Cascade back-references
// (items registered per definition, items registered per category) are kept
// as Manager-owned indices; entities stay plain data.
//
// The Manager is not safe for concurrent use. All mutations are expected to
// run to completion on the single control thread before the view re-renders.
package depot

import (
	"sort"

	"github.com/mesh-intelligence/depot/pkg/types"
)

// Manager owns all loan-tracking state reachable from one snapshot.
type Manager struct {
	registry   *types.Registry
	categories map[string]*types.Category
	properties map[*types.PropertyDefinition]bool // true = active, false = retired

	items        map[string]*types.Item
	retiredItems map[string]*types.Item

	persons        map[string]*types.Person
	retiredPersons map[string]*types.Person

	openLoans   map[*types.Item]map[*types.Loan]bool
	closedLoans map[*types.Item]map[*types.Loan]bool
	personLoans map[*types.Person]map[*types.Loan]bool // open loans per person

	// Cascade indices.
	itemsByProperty map[*types.PropertyDefinition]map[string]*types.Item
	itemsByCategory map[*types.Category]map[string]*types.Item
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		registry:        types.NewRegistry(),
		categories:      make(map[string]*types.Category),
		properties:      make(map[*types.PropertyDefinition]bool),
		items:           make(map[string]*types.Item),
		retiredItems:    make(map[string]*types.Item),
		persons:         make(map[string]*types.Person),
		retiredPersons:  make(map[string]*types.Person),
		openLoans:       make(map[*types.Item]map[*types.Loan]bool),
		closedLoans:     make(map[*types.Item]map[*types.Loan]bool),
		personLoans:     make(map[*types.Person]map[*types.Loan]bool),
		itemsByProperty: make(map[*types.PropertyDefinition]map[string]*types.Item),
		itemsByCategory: make(map[*types.Category]map[string]*types.Item),
	}
}

// NewSeededManager returns a manager carrying the default identifying
// property, used when no snapshot exists yet or the latest one is unreadable.
func NewSeededManager() *Manager {
	m := NewManager()
	// The seed cannot fail: the name normalizes to a non-empty key.
	_, _ = m.CreateProperty(types.PropertySpec{
		Name:      "ID",
		ValueType: types.ValueTypeString,
		Mandatory: true,
		NoEdit:    true,
	})
	return m
}

// Registry exposes the property registry for read-only lookups.
func (m *Manager) Registry() *types.Registry {
	return m.registry
}

// AddCategory registers a category under the given code. Entries of props may
// be property names (strings) or *types.PropertyDefinition references;
// unresolvable entries are silently ignored, so the call always succeeds with
// whatever subset resolved.
func (m *Manager) AddCategory(code, description string, props []any) *types.Category {
	var resolved []*types.PropertyDefinition
	for _, p := range props {
		switch v := p.(type) {
		case string:
			if def := m.registry.Get(v); def != nil {
				resolved = append(resolved, def)
			}
		case *types.PropertyDefinition:
			if v != nil {
				resolved = append(resolved, v)
			}
		}
	}
	cat := types.NewCategory(code, description, resolved)
	m.categories[code] = cat
	m.itemsByCategory[cat] = make(map[string]*types.Item)
	return cat
}

// RenameCategory re-keys the catalog entry for cat to newCode. No-op when the
// code is unchanged. Item back-references are untouched; the index is keyed
// by identity, not by code.
func (m *Manager) RenameCategory(cat *types.Category, newCode string) {
	if cat.Name == newCode {
		return
	}
	delete(m.categories, cat.Name)
	cat.Name = newCode
	m.categories[newCode] = cat
}

// UpdateCategoryProperties replaces the category's property set and order
// with the given ordered list. Properties newly introduced by the list are
// back-filled onto every registered item with an empty value. Mandatory-ness
// of previously satisfied constraints is not re-validated.
func (m *Manager) UpdateCategoryProperties(cat *types.Category, ordered []*types.PropertyDefinition) {
	var toAdd []*types.PropertyDefinition
	for _, def := range ordered {
		if !cat.Has(def) {
			toAdd = append(toAdd, def)
		}
	}
	for _, it := range m.itemsByCategory[cat] {
		for _, def := range toAdd {
			if it.AddProperty(def) {
				m.indexItemProperty(def, it)
			}
		}
	}
	cat.SetProperties(ordered)
}

// AddCategoryProperty appends def to the category's schema. Registered items
// are not back-filled; use UpdateCategoryProperties for that.
func (m *Manager) AddCategoryProperty(cat *types.Category, def *types.PropertyDefinition) {
	cat.AddProperty(def)
}

// RemoveCategoryProperty drops def from the category's schema. With
// cascadeToItems, the property is also detached from every registered item,
// subject to each item's mandatory-property guard: items where the guard
// fires keep their value. Removal of an absent property is idempotent.
func (m *Manager) RemoveCategoryProperty(cat *types.Category, def *types.PropertyDefinition, cascadeToItems bool) {
	if !cat.RemoveProperty(def) {
		return
	}
	if !cascadeToItems {
		return
	}
	for _, it := range m.itemsByCategory[cat] {
		if err := it.RemoveProperty(def, false); err == nil {
			m.unindexItemProperty(def, it)
		}
	}
}

// Categories returns the catalog ordered by code.
func (m *Manager) Categories() []*types.Category {
	cats := make([]*types.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats
}

// Category returns the category registered under code, or nil.
func (m *Manager) Category(code string) *types.Category {
	return m.categories[code]
}

// RegisteredItems returns the items registered to cat, active or retired,
// ordered by identifier.
func (m *Manager) RegisteredItems(cat *types.Category) []*types.Item {
	return sortedItems(m.itemsByCategory[cat])
}

func sortedItems(set map[string]*types.Item) []*types.Item {
	items := make([]*types.Item, 0, len(set))
	for _, it := range set {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
