package depot

import (
	"sort"
	"time"

	"github.com/mesh-intelligence/depot/pkg/types"
)

// CreateLoan opens a loan of item to person as of date. The item must be in
// the active set, otherwise a *types.NotFoundError is returned. The person
// is registered in the active person set, leaving the retired set if they
// were archived there.
func (m *Manager) CreateLoan(item *types.Item, date time.Time, person *types.Person, note string) (*types.Loan, error) {
	if _, ok := m.items[item.ID]; !ok {
		return nil, &types.NotFoundError{Entity: "item", ID: item.ID}
	}
	loan := types.NewLoan(item, person, date, note)
	delete(m.retiredPersons, person.ID)
	m.persons[person.ID] = person

	if m.openLoans[item] == nil {
		m.openLoans[item] = make(map[*types.Loan]bool)
	}
	m.openLoans[item][loan] = true
	if m.personLoans[person] == nil {
		m.personLoans[person] = make(map[*types.Loan]bool)
	}
	m.personLoans[person][loan] = true
	return loan, nil
}

// GiveBackLoan closes a single loan as of date: the return date is set, the
// loan moves from the open to the closed index, and the person is archived
// when no open loan remains anywhere. Closing a loan that is not open is a
// no-op.
func (m *Manager) GiveBackLoan(loan *types.Loan, date time.Time) {
	item := loan.Item
	open, ok := m.openLoans[item]
	if !ok || !open[loan] {
		return
	}
	loan.GiveBack(date)
	delete(open, loan)
	if len(open) == 0 {
		delete(m.openLoans, item)
	}
	if m.closedLoans[item] == nil {
		m.closedLoans[item] = make(map[*types.Loan]bool)
	}
	m.closedLoans[item][loan] = true

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

// GiveBackItem closes every open loan on the item as of date. Idempotent: an
// item with no open loans is a no-op.
func (m *Manager) GiveBackItem(item *types.Item, date time.Time) {
	loans := m.OpenLoans(item)
	for _, loan := range loans {
		m.GiveBackLoan(loan, date)
	}
}

// IsLoaned reports whether the item has at least one open loan.
func (m *Manager) IsLoaned(item *types.Item) bool {
	return len(m.openLoans[item]) > 0
}

// OpenLoans returns the item's open loans ordered by creation timestamp.
func (m *Manager) OpenLoans(item *types.Item) []*types.Loan {
	return sortedLoans(m.openLoans[item])
}

// ClosedLoans returns the item's closed loans ordered by creation timestamp.
func (m *Manager) ClosedLoans(item *types.Item) []*types.Loan {
	return sortedLoans(m.closedLoans[item])
}

// OpenLoansFor returns the person's open loans ordered by creation timestamp.
func (m *Manager) OpenLoansFor(person *types.Person) []*types.Loan {
	return sortedLoans(m.personLoans[person])
}

// LoanedItems returns every item with at least one open loan, ordered by
// identifier.
func (m *Manager) LoanedItems() []*types.Item {
	set := make(map[string]*types.Item, len(m.openLoans))
	for it := range m.openLoans {
		set[it.ID] = it
	}
	return sortedItems(set)
}

// ItemsWithClosedLoans returns every item with loan history, ordered by
// identifier.
func (m *Manager) ItemsWithClosedLoans() []*types.Item {
	set := make(map[string]*types.Item, len(m.closedLoans))
	for it := range m.closedLoans {
		set[it.ID] = it
	}
	return sortedItems(set)
}

// ActivePersons returns the persons currently holding open loans, ordered by
// identifier.
func (m *Manager) ActivePersons() []*types.Person {
	return sortedPersons(m.persons)
}

// RetiredPersons returns the archived persons, ordered by identifier.
func (m *Manager) RetiredPersons() []*types.Person {
	return sortedPersons(m.retiredPersons)
}

// PersonByID returns the person with the given identifier from the active or
// retired set, or nil.
func (m *Manager) PersonByID(id string) *types.Person {
	if p, ok := m.persons[id]; ok {
		return p
	}
	return m.retiredPersons[id]
}

// PersonActive reports whether the person is in the active set.
func (m *Manager) PersonActive(p *types.Person) bool {
	_, ok := m.persons[p.ID]
	return ok
}

// FindPerson looks up a person by composite identity across both person
// sets. Returns nil when no person matches; the view layer uses this to
// avoid creating duplicate borrowers.
func (m *Manager) FindPerson(name, surname string, birthday types.ProtectedDate, place string) *types.Person {
	for _, p := range sortedPersons(m.persons) {
		if p.Matches(name, surname, birthday, place) {
			return p
		}
	}
	for _, p := range sortedPersons(m.retiredPersons) {
		if p.Matches(name, surname, birthday, place) {
			return p
		}
	}
	return nil
}

func sortedLoans(set map[*types.Loan]bool) []*types.Loan {
	loans := make([]*types.Loan, 0, len(set))
	for l := range set {
		loans = append(loans, l)
	}
	sort.Slice(loans, func(i, j int) bool {
		if loans[i].Timestamp.Equal(loans[j].Timestamp) {
			return loans[i].ID < loans[j].ID
		}
		return loans[i].Timestamp.Before(loans[j].Timestamp)
	})
	return loans
}

func sortedPersons(set map[string]*types.Person) []*types.Person {
	persons := make([]*types.Person, 0, len(set))
	for _, p := range set {
		persons = append(persons, p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons
}
