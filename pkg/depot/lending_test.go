package depot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/depot/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateLoanRequiresActiveItem(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ParseDate("1953/04/22"), "Ward B", "")

	m.RetireItem(it, true)
	_, err = m.CreateLoan(it, day(2021, 10, 19), p, "")
	var nferr *types.NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "item", nferr.Entity)

	m.UnretireItem(it)
	loan, err := m.CreateLoan(it, day(2021, 10, 19), p, "weekend outing")
	require.NoError(t, err)
	assert.True(t, m.IsLoaned(it))
	assert.Contains(t, m.ActivePersons(), p, "borrower must join the active person set")
	assert.Equal(t, []*types.Loan{loan}, m.OpenLoansFor(p))
}

func TestGiveBackScenario(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ParseDate("1953/04/22"), "Ward B", "")
	loan, err := m.CreateLoan(it, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	m.GiveBackItem(it, day(2021, 10, 20))
	assert.False(t, m.IsLoaned(it))
	assert.True(t, loan.Finished)
	assert.Equal(t, "2021/10/20", loan.Returned.Format())
	assert.Empty(t, m.OpenLoans(it))
	assert.Equal(t, []*types.Loan{loan}, m.ClosedLoans(it))
	assert.Empty(t, m.ActivePersons(), "last give-back archives the person")
	assert.Contains(t, m.RetiredPersons(), p)
}

func TestGiveBackIdempotent(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")
	loan, err := m.CreateLoan(it, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	m.GiveBackItem(it, day(2021, 10, 20))
	closed := m.ClosedLoans(it)

	// Second give-back with no open loans: no state change, no panic.
	m.GiveBackItem(it, day(2021, 10, 21))
	m.GiveBackLoan(loan, day(2021, 10, 21))
	assert.Equal(t, closed, m.ClosedLoans(it))
	assert.Equal(t, "2021/10/20", loan.Returned.Format())
	assert.Len(t, m.RetiredPersons(), 1)
}

func TestPersonReactivation(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")

	_, err = m.CreateLoan(it, day(2021, 10, 19), p, "")
	require.NoError(t, err)
	m.GiveBackItem(it, day(2021, 10, 20))
	require.Contains(t, m.RetiredPersons(), p)

	_, err = m.CreateLoan(it, day(2021, 11, 2), p, "")
	require.NoError(t, err)
	assert.Contains(t, m.ActivePersons(), p, "a new loan must reactivate the person")
	assert.NotContains(t, m.RetiredPersons(), p, "person sets must stay disjoint")
}

func TestPersonStaysActiveWithOtherLoans(t *testing.T) {
	m, cat := fleetManager(t)
	a, err := m.CreateItem(cat, map[string]any{"ID": "FR 101"})
	require.NoError(t, err)
	b, err := m.CreateItem(cat, map[string]any{"ID": "FR 102"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")

	_, err = m.CreateLoan(a, day(2021, 10, 19), p, "")
	require.NoError(t, err)
	_, err = m.CreateLoan(b, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	m.GiveBackItem(a, day(2021, 10, 20))
	assert.Contains(t, m.ActivePersons(), p, "person with a remaining open loan stays active")
	assert.Len(t, m.OpenLoansFor(p), 1)
}

func TestRetireUnretireInvolution(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103", "length": 45})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")
	loan, err := m.CreateLoan(it, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	m.RetireItem(it, true)
	assert.Empty(t, m.ActiveItems())
	assert.Equal(t, []*types.Item{it}, m.RetiredItems())
	assert.True(t, loan.Finished, "retire must force-close open loans")
	assert.False(t, m.IsLoaned(it))

	m.UnretireItem(it)
	assert.Equal(t, []*types.Item{it}, m.ActiveItems())
	assert.Empty(t, m.RetiredItems())
	assert.True(t, loan.Finished, "loans closed during retire stay closed")
	pv, ok := it.Lookup("length")
	require.True(t, ok)
	assert.Equal(t, int64(45), pv.Value, "property values survive the round trip")

	m.RetireItem(it, false)
	m.RetireItem(it, false) // retiring a retired item is a no-op
	m.UnretireItem(it)
	m.UnretireItem(it) // unretiring an active item is a no-op
	assert.Len(t, m.ActiveItems(), 1)
}

func TestRelendViaGiveBack(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	first := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")
	second := types.NewPerson("Bora", "Novak", types.ProtectedDate{}, "Ward C", "")

	_, err = m.CreateLoan(it, day(2021, 10, 19), first, "")
	require.NoError(t, err)

	// Re-lending closes the existing loan first; the ledger never holds two
	// simultaneously open loans on one item.
	m.GiveBackItem(it, day(2021, 10, 25))
	_, err = m.CreateLoan(it, day(2021, 10, 25), second, "")
	require.NoError(t, err)

	require.Len(t, m.OpenLoans(it), 1)
	assert.Same(t, second, m.OpenLoans(it)[0].Person)
	assert.Contains(t, m.RetiredPersons(), first)
}

func TestFindPerson(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ParseDate("1953/04/22"), "Ward B", "")
	_, err = m.CreateLoan(it, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	assert.Same(t, p, m.FindPerson("Ada", "Martin", types.ParseDate("1953/04/22"), "Ward B"))
	assert.Nil(t, m.FindPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B"))

	// Archived persons remain findable.
	m.GiveBackItem(it, day(2021, 10, 20))
	assert.Same(t, p, m.FindPerson("Ada", "Martin", types.ParseDate("1953/04/22"), "Ward B"))
}

func TestDeleteItemClearsLoanLedger(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ParseDate("1953/04/22"), "Ward B", "")
	_, err = m.CreateLoan(it, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	m.DeleteItem(it)
	assert.Empty(t, m.OpenLoansFor(p), "loans on a deleted item must not linger in the person index")
	assert.NotContains(t, m.ActivePersons(), p, "borrower with no remaining open loan is archived")
	assert.Contains(t, m.RetiredPersons(), p)
	assert.Nil(t, m.ItemByID(it.ID))
}

func TestDeleteItemKeepsPersonWithOtherLoans(t *testing.T) {
	m, cat := fleetManager(t)
	a, err := m.CreateItem(cat, map[string]any{"ID": "FR 101"})
	require.NoError(t, err)
	b, err := m.CreateItem(cat, map[string]any{"ID": "FR 102"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")

	_, err = m.CreateLoan(a, day(2021, 10, 19), p, "")
	require.NoError(t, err)
	keep, err := m.CreateLoan(b, day(2021, 10, 19), p, "")
	require.NoError(t, err)

	m.DeleteItem(a)
	assert.Contains(t, m.ActivePersons(), p, "person with a loan on another item stays active")
	assert.Equal(t, []*types.Loan{keep}, m.OpenLoansFor(p))
}

func TestLoanOrderingByTimestamp(t *testing.T) {
	m, cat := fleetManager(t)
	it, err := m.CreateItem(cat, map[string]any{"ID": "FR 103"})
	require.NoError(t, err)
	p := types.NewPerson("Ada", "Martin", types.ProtectedDate{}, "Ward B", "")

	var loans []*types.Loan
	for i := 0; i < 3; i++ {
		loan, err := m.CreateLoan(it, day(2021, 10, 19), p, "")
		require.NoError(t, err)
		loans = append(loans, loan)
		m.GiveBackLoan(loan, day(2021, 10, 20))
	}
	assert.Equal(t, loans, m.ClosedLoans(it), "closed loans keep creation order")
}
