package depot

import "github.com/mesh-intelligence/depot/pkg/types"

// CreateProperty is the sanctioned entry point for defining properties: it
// registers the definition and marks it active in this manager's scope.
// Redefining an existing name replaces the registry entry, so callers
// creating genuinely new properties should consult Registry().Get first.
func (m *Manager) CreateProperty(spec types.PropertySpec) (*types.PropertyDefinition, error) {
	def, err := m.registry.Define(spec)
	if err != nil {
		return nil, err
	}
	m.properties[def] = true
	if m.itemsByProperty[def] == nil {
		m.itemsByProperty[def] = make(map[string]*types.Item)
	}
	return def, nil
}

// RetireProperty soft-disables a property in this manager's scope. The ref
// may be a *types.PropertyDefinition or a property name. Unknown refs are
// ignored.
func (m *Manager) RetireProperty(ref any) {
	if def := m.resolveProperty(ref); def != nil {
		if _, ok := m.properties[def]; ok {
			m.properties[def] = false
		}
	}
}

// UnretireProperty re-enables a previously retired property.
func (m *Manager) UnretireProperty(ref any) {
	if def := m.resolveProperty(ref); def != nil {
		if _, ok := m.properties[def]; ok {
			m.properties[def] = true
		}
	}
}

// RemoveProperty cascades the removal of def to every item currently holding
// it, bypassing the mandatory guard, clears the back-reference index, and
// flags the definition retired. The definition stays in the registry so that
// historical snapshots referencing it still deserialize.
func (m *Manager) RemoveProperty(def *types.PropertyDefinition) {
	for _, it := range m.itemsByProperty[def] {
		// ignoreMandatory: the definition itself is going away.
		_ = it.RemoveProperty(def, true)
	}
	m.itemsByProperty[def] = make(map[string]*types.Item)
	def.Retired = true
	if _, ok := m.properties[def]; ok {
		m.properties[def] = false
	}
}

// Properties returns the definitions known to this manager, ordered by
// special name. With includeRetired false, only active ones are returned.
func (m *Manager) Properties(includeRetired bool) []*types.PropertyDefinition {
	var defs []*types.PropertyDefinition
	for _, def := range m.registry.Definitions() {
		active, known := m.properties[def]
		if !known {
			continue
		}
		if active || includeRetired {
			defs = append(defs, def)
		}
	}
	return defs
}

// PropertyActive reports whether def is known to this manager and active.
func (m *Manager) PropertyActive(def *types.PropertyDefinition) bool {
	return m.properties[def]
}

// ItemsWithProperty returns the items currently holding def, ordered by
// identifier.
func (m *Manager) ItemsWithProperty(def *types.PropertyDefinition) []*types.Item {
	return sortedItems(m.itemsByProperty[def])
}

func (m *Manager) resolveProperty(ref any) *types.PropertyDefinition {
	switch v := ref.(type) {
	case *types.PropertyDefinition:
		return v
	case string:
		return m.registry.Get(v)
	}
	return nil
}

func (m *Manager) indexItemProperty(def *types.PropertyDefinition, it *types.Item) {
	if m.itemsByProperty[def] == nil {
		m.itemsByProperty[def] = make(map[string]*types.Item)
	}
	m.itemsByProperty[def][it.ID] = it
}

func (m *Manager) unindexItemProperty(def *types.PropertyDefinition, it *types.Item) {
	delete(m.itemsByProperty[def], it.ID)
}
