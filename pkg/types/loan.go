package types

import "time"

// Loan is a time-bounded assignment of one item to one person. A loan is
// open until given back; Closed is terminal. The creation timestamp is kept
// for tie-breaking and audit.
type Loan struct {
	ID        string
	Item      *Item
	Person    *Person
	Date      time.Time     // day the item was handed out
	Returned  ProtectedDate // empty while the loan is open
	Finished  bool
	Note      string
	Timestamp time.Time // creation instant
}

// NewLoan creates an open loan of item to person starting at date.
func NewLoan(item *Item, person *Person, date time.Time, note string) *Loan {
	return &Loan{
		ID:        NewID(),
		Item:      item,
		Person:    person,
		Date:      date,
		Note:      note,
		Timestamp: time.Now(),
	}
}

// GiveBack closes the loan as of the given return date. Idempotent; closing
// an already-finished loan only updates the return date when one is given.
func (l *Loan) GiveBack(date time.Time) {
	if !date.IsZero() {
		l.Returned = NewDate(date)
	}
	l.Finished = true
}
