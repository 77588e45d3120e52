// Package sqlite builds a disposable SQLite report database from a Manager.
// SQLite serves as the query engine for ad-hoc reporting; the compressed
// snapshots stay the source of truth, so the database file is removed and
// rebuilt on every export.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/depot/pkg/depot"
	"github.com/mesh-intelligence/depot/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// ReportDB is a read handle over an exported report database.
type ReportDB struct {
	db *sql.DB
}

// Export replays the manager's full state into a fresh report database at
// path. An existing file at path is removed first to guarantee a clean
// schema. The replay is transactional: the database appears fully populated
// or not at all.
func Export(m *depot.Manager, path string) error {
	// Remove existing database file to ensure fresh schema
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening report database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertProperties(tx, m); err != nil {
		return err
	}
	if err := insertCategories(tx, m); err != nil {
		return err
	}
	if err := insertItems(tx, m); err != nil {
		return err
	}
	if err := insertPersons(tx, m); err != nil {
		return err
	}
	if err := insertLoans(tx, m); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

func insertProperties(tx *sql.Tx, m *depot.Manager) error {
	stmt, err := tx.Prepare(
		"INSERT INTO properties (special_name, name, value_type, unit, mandatory, no_edit, retired) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing properties insert: %w", err)
	}
	defer stmt.Close()

	for _, def := range m.Properties(true) {
		_, err := stmt.Exec(def.SpecialName, def.Name, def.ValueType, def.Unit,
			boolInt(def.Mandatory), boolInt(def.NoEdit), boolInt(!m.PropertyActive(def)))
		if err != nil {
			return fmt.Errorf("inserting property %s: %w", def.SpecialName, err)
		}
	}
	return nil
}

func insertCategories(tx *sql.Tx, m *depot.Manager) error {
	catStmt, err := tx.Prepare("INSERT INTO categories (code, description) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing categories insert: %w", err)
	}
	defer catStmt.Close()
	memberStmt, err := tx.Prepare(
		"INSERT INTO category_properties (code, special_name, ordinal) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing category_properties insert: %w", err)
	}
	defer memberStmt.Close()

	for _, cat := range m.Categories() {
		if _, err := catStmt.Exec(cat.Name, cat.Description); err != nil {
			return fmt.Errorf("inserting category %s: %w", cat.Name, err)
		}
		for i, def := range cat.PropertiesOrder {
			if _, err := memberStmt.Exec(cat.Name, def.SpecialName, i); err != nil {
				return fmt.Errorf("inserting schema of category %s: %w", cat.Name, err)
			}
		}
	}
	return nil
}

func insertItems(tx *sql.Tx, m *depot.Manager) error {
	itemStmt, err := tx.Prepare("INSERT INTO items (item_id, code, retired) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing items insert: %w", err)
	}
	defer itemStmt.Close()
	valueStmt, err := tx.Prepare(
		"INSERT INTO item_values (item_id, special_name, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing item_values insert: %w", err)
	}
	defer valueStmt.Close()

	insert := func(items []*types.Item, retired bool) error {
		for _, it := range items {
			if _, err := itemStmt.Exec(it.ID, it.Category.Name, boolInt(retired)); err != nil {
				return fmt.Errorf("inserting item %s: %w", it.ID, err)
			}
			for special, pv := range it.Values {
				if _, err := valueStmt.Exec(it.ID, special, pv.String()); err != nil {
					return fmt.Errorf("inserting value %s of item %s: %w", special, it.ID, err)
				}
			}
		}
		return nil
	}
	if err := insert(m.ActiveItems(), false); err != nil {
		return err
	}
	return insert(m.RetiredItems(), true)
}

func insertPersons(tx *sql.Tx, m *depot.Manager) error {
	stmt, err := tx.Prepare(
		"INSERT INTO persons (person_id, name, surname, birthday, place, note, retired) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing persons insert: %w", err)
	}
	defer stmt.Close()

	insert := func(persons []*types.Person, retired bool) error {
		for _, p := range persons {
			_, err := stmt.Exec(p.ID, p.Name, p.Surname, p.Birthday.Format(), p.Place, p.Note, boolInt(retired))
			if err != nil {
				return fmt.Errorf("inserting person %s: %w", p.ID, err)
			}
		}
		return nil
	}
	if err := insert(m.ActivePersons(), false); err != nil {
		return err
	}
	return insert(m.RetiredPersons(), true)
}

func insertLoans(tx *sql.Tx, m *depot.Manager) error {
	stmt, err := tx.Prepare(
		"INSERT INTO loans (loan_id, item_id, person_id, loan_date, return_date, finished, note) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing loans insert: %w", err)
	}
	defer stmt.Close()

	insert := func(loans []*types.Loan) error {
		for _, loan := range loans {
			_, err := stmt.Exec(loan.ID, loan.Item.ID, loan.Person.ID,
				loan.Date.Format(types.DateLayout), loan.Returned.Format(), boolInt(loan.Finished), loan.Note)
			if err != nil {
				return fmt.Errorf("inserting loan %s: %w", loan.ID, err)
			}
		}
		return nil
	}
	for _, it := range m.LoanedItems() {
		if err := insert(m.OpenLoans(it)); err != nil {
			return err
		}
	}
	for _, it := range m.ItemsWithClosedLoans() {
		if err := insert(m.ClosedLoans(it)); err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Open opens an exported report database for querying.
func Open(path string) (*ReportDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening report database: %w", err)
	}
	return &ReportDB{db: db}, nil
}

// Close releases the database handle.
func (r *ReportDB) Close() error {
	return r.db.Close()
}

// OpenLoanCount returns the number of currently open loans.
func (r *ReportDB) OpenLoanCount() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM loans WHERE finished = 0").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting open loans: %w", err)
	}
	return n, nil
}

// ItemsByCategory returns the identifiers of all items of one category,
// active and retired, ordered by identifier.
func (r *ReportDB) ItemsByCategory(code string) ([]string, error) {
	rows, err := r.db.Query("SELECT item_id FROM items WHERE code = ? ORDER BY item_id", code)
	if err != nil {
		return nil, fmt.Errorf("querying items of %s: %w", code, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
