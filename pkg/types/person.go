package types

// Person is a borrower. Identity is the composite of name, surname, birthday,
// and place; the ID exists for referential stability in snapshots. Whether a
// person sits in the active or retired set is decided solely by whether they
// currently hold any open loan.
type Person struct {
	ID       string
	Name     string
	Surname  string
	Birthday ProtectedDate // may be empty when unknown
	Place    string        // ward or unit
	Note     string
}

// NewPerson creates a person with a fresh identifier.
func NewPerson(name, surname string, birthday ProtectedDate, place, note string) *Person {
	return &Person{
		ID:       NewID(),
		Name:     name,
		Surname:  surname,
		Birthday: birthday,
		Place:    place,
		Note:     note,
	}
}

// Matches reports whether the person carries the given composite identity.
func (p *Person) Matches(name, surname string, birthday ProtectedDate, place string) bool {
	return p.Name == name && p.Surname == surname && p.Place == place && p.Birthday.Equal(birthday)
}
