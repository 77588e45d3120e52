package depot

import "github.com/mesh-intelligence/depot/pkg/types"

// Restore helpers used by the snapshot loader to rebuild a manager with the
// identifiers and timestamps recorded on disk. Regular mutation entry points
// generate fresh IDs and enforce active-set preconditions, which rehydration
// must bypass.

// RestoreItem ingests an item carrying its persisted identifier and places
// it in the requested set.
func (m *Manager) RestoreItem(it *types.Item, retired bool) {
	m.AddItem(it)
	if retired {
		delete(m.items, it.ID)
		m.retiredItems[it.ID] = it
	}
}

// RestorePerson places a person in the requested set without touching the
// loan ledger. Open loans restored later move the person back to the active
// set if the sections disagree.
func (m *Manager) RestorePerson(p *types.Person, retired bool) {
	if retired {
		delete(m.persons, p.ID)
		m.retiredPersons[p.ID] = p
		return
	}
	delete(m.retiredPersons, p.ID)
	m.persons[p.ID] = p
}

// RestoreLoan wires a fully populated loan into the ledger indices. Open
// loans force the person into the active set; closed loans leave person
// membership as restored.
func (m *Manager) RestoreLoan(loan *types.Loan, closed bool) {
	item, person := loan.Item, loan.Person
	if closed {
		if m.closedLoans[item] == nil {
			m.closedLoans[item] = make(map[*types.Loan]bool)
		}
		m.closedLoans[item][loan] = true
		return
	}
	if m.openLoans[item] == nil {
		m.openLoans[item] = make(map[*types.Loan]bool)
	}
	m.openLoans[item][loan] = true
	if m.personLoans[person] == nil {
		m.personLoans[person] = make(map[*types.Loan]bool)
	}
	m.personLoans[person][loan] = true
	delete(m.retiredPersons, person.ID)
	m.persons[person.ID] = person
}

// RestoreProperty registers a definition exactly as persisted, including its
// retired flag, and records its activity in this manager's scope.
func (m *Manager) RestoreProperty(spec types.PropertySpec, retired bool) (*types.PropertyDefinition, error) {
	def, err := m.CreateProperty(spec)
	if err != nil {
		return nil, err
	}
	if retired {
		def.Retired = true
		m.properties[def] = false
	}
	return def, nil
}
