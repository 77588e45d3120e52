package depot

import (
	"time"

	"github.com/mesh-intelligence/depot/pkg/types"
)

// CreateItem constructs an item of cat from the given values and ingests it.
// Values for properties not declared on the category are silently dropped;
// a missing mandatory property yields a *types.ValidationError carrying the
// full list of absent names.
func (m *Manager) CreateItem(cat *types.Category, values map[string]any) (*types.Item, error) {
	it, err := types.NewItem(cat, values)
	if err != nil {
		return nil, err
	}
	m.AddItem(it)
	return it, nil
}

// CreateEmptyItem constructs an item carrying a blank value for every
// property of cat, bypassing mandatory validation, and ingests it.
func (m *Manager) CreateEmptyItem(cat *types.Category) *types.Item {
	it := types.NewEmptyItem(cat)
	m.AddItem(it)
	return it
}

// AddItem ingests an externally constructed item into the active set. The
// item's category is auto-registered when unseen, and every property
// definition it carries is auto-activated in this manager's scope.
func (m *Manager) AddItem(it *types.Item) {
	cat := it.Category
	if _, ok := m.categories[cat.Name]; !ok {
		m.categories[cat.Name] = cat
	}
	if m.itemsByCategory[cat] == nil {
		m.itemsByCategory[cat] = make(map[string]*types.Item)
	}
	for _, pv := range it.Values {
		def := pv.Definition
		if _, known := m.properties[def]; !known {
			m.properties[def] = true
		}
		m.indexItemProperty(def, it)
	}
	m.items[it.ID] = it
	m.itemsByCategory[cat][it.ID] = it
}

// AddItems ingests items one by one. There are no partial-failure semantics:
// the loop is plain repeated ingestion.
func (m *Manager) AddItems(items []*types.Item) {
	for _, it := range items {
		m.AddItem(it)
	}
}

// CreateItems constructs and ingests one item per value set. A failing value
// set aborts the call and returns the error; items created before the
// failure stay committed, there is no rollback.
func (m *Manager) CreateItems(cat *types.Category, valueSets []map[string]any) ([]*types.Item, error) {
	var created []*types.Item
	for _, values := range valueSets {
		it, err := m.CreateItem(cat, values)
		if err != nil {
			return created, err
		}
		created = append(created, it)
	}
	return created, nil
}

// DeleteItem permanently removes the item from every manager index.
// Irreversible; intended for items that were never really in circulation.
// Open loans on the item vanish with it, and borrowers left without any
// open loan are archived, keeping person set membership a pure function of
// the open-loan ledger.
func (m *Manager) DeleteItem(it *types.Item) {
	for loan := range m.openLoans[it] {
		person := loan.Person
		delete(m.personLoans[person], loan)
		if len(m.personLoans[person]) == 0 {
			delete(m.personLoans, person)
			if _, active := m.persons[person.ID]; active {
				delete(m.persons, person.ID)
				m.retiredPersons[person.ID] = person
			}
		}
	}
	delete(m.items, it.ID)
	delete(m.retiredItems, it.ID)
	delete(m.itemsByCategory[it.Category], it.ID)
	for _, pv := range it.Values {
		m.unindexItemProperty(pv.Definition, it)
	}
	delete(m.openLoans, it)
	delete(m.closedLoans, it)
}

// RetireItem moves the item from the active to the retired set. With
// closeLoans, every currently open loan on the item is force-closed with the
// current time as the return date, which also archives persons left without
// open loans. No-op when the item is not active.
func (m *Manager) RetireItem(it *types.Item, closeLoans bool) {
	if _, ok := m.items[it.ID]; !ok {
		return
	}
	delete(m.items, it.ID)
	m.retiredItems[it.ID] = it
	if closeLoans {
		m.GiveBackItem(it, time.Now())
	}
}

// UnretireItem moves the item back to the active set. Loans closed during
// retirement stay closed.
func (m *Manager) UnretireItem(it *types.Item) {
	if _, ok := m.retiredItems[it.ID]; !ok {
		return
	}
	delete(m.retiredItems, it.ID)
	m.items[it.ID] = it
}

// AddItemProperty attaches an empty-valued instance of def to the item and
// keeps the cascade index current. No-op when already present.
func (m *Manager) AddItemProperty(it *types.Item, def *types.PropertyDefinition) {
	if it.AddProperty(def) {
		m.indexItemProperty(def, it)
	}
}

// RemoveItemProperty detaches def from the item, subject to the mandatory
// guard unless ignoreMandatory is set.
func (m *Manager) RemoveItemProperty(it *types.Item, def *types.PropertyDefinition, ignoreMandatory bool) error {
	if err := it.RemoveProperty(def, ignoreMandatory); err != nil {
		return err
	}
	m.unindexItemProperty(def, it)
	return nil
}

// ActiveItems returns the active item set ordered by identifier.
func (m *Manager) ActiveItems() []*types.Item {
	return sortedItems(m.items)
}

// RetiredItems returns the retired item set ordered by identifier.
func (m *Manager) RetiredItems() []*types.Item {
	return sortedItems(m.retiredItems)
}

// ItemByID returns the item with the given identifier from the active or
// retired set, or nil.
func (m *Manager) ItemByID(id string) *types.Item {
	if it, ok := m.items[id]; ok {
		return it
	}
	return m.retiredItems[id]
}

// ItemActive reports whether the item is in the active set.
func (m *Manager) ItemActive(it *types.Item) bool {
	_, ok := m.items[it.ID]
	return ok
}
