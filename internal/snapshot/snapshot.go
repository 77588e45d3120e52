// Package snapshot serializes the full Manager state to daily compressed
// JSON documents and reconstructs managers from them. Saving is atomic
// (temp file, fsync, rename); loading is all-or-nothing at the file level
// but best-effort per field: records whose referenced category, property,
// item, or person did not resolve are dropped rather than failing the load.
package snapshot

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/depot/pkg/depot"
	"github.com/mesh-intelligence/depot/pkg/types"
)

// document is the top-level snapshot layout. Every section is a keyed
// mapping; cross-references use entity identifiers.
type document struct {
	Properties     map[string]propertyRecord `json:"properties"`
	Categories     map[string]categoryRecord `json:"categories"`
	Items          map[string]itemRecord     `json:"items"`
	RetiredItems   map[string]itemRecord     `json:"retired_items"`
	Persons        map[string]personRecord   `json:"persons"`
	RetiredPersons map[string]personRecord   `json:"retired_persons"`
	Loans          map[string][]loanRecord   `json:"loans"`
	RetiredLoans   map[string][]loanRecord   `json:"retired_loans"`
}

type propertyRecord struct {
	Name        string   `json:"name"`
	SpecialName string   `json:"special_name"`
	ValueType   string   `json:"value_type"`
	Unit        string   `json:"unit"`
	Select      []string `json:"select"`
	NoEdit      bool     `json:"no_edit"`
	Mandatory   bool     `json:"mandatory"`
	Retired     bool     `json:"retired,omitempty"`
}

type categoryRecord struct {
	RegisteredItems []string `json:"registered_items"`
	Properties      []string `json:"properties"`       // special names, unordered membership
	PropertiesOrder []string `json:"properties_order"` // display names, column order
	Description     string   `json:"description"`
}

type itemRecord struct {
	Properties []map[string]any  `json:"properties"` // one {special_name: value} pair each
	Notes      map[string]string `json:"notes"`
	Category   string            `json:"category"`
}

type personRecord struct {
	Name     string   `json:"name"`
	Surname  string   `json:"surname"`
	Birthday string   `json:"birthday"` // YYYY/MM/DD, "" when unknown
	Place    string   `json:"place"`
	Note     string   `json:"note"`
	Loans    []string `json:"loans"` // open loan identifiers
}

type loanRecord struct {
	ID        string  `json:"id"`
	Person    string  `json:"person"`
	Date      string  `json:"date"`
	Note      string  `json:"note"`
	Timestamp float64 `json:"timestamp"` // creation instant, unix seconds
	Returned  string  `json:"returned,omitempty"`
	Finished  bool    `json:"finished,omitempty"`
}

// encode captures the manager's full reachable state.
func encode(m *depot.Manager) *document {
	doc := &document{
		Properties:     make(map[string]propertyRecord),
		Categories:     make(map[string]categoryRecord),
		Items:          make(map[string]itemRecord),
		RetiredItems:   make(map[string]itemRecord),
		Persons:        make(map[string]personRecord),
		RetiredPersons: make(map[string]personRecord),
		Loans:          make(map[string][]loanRecord),
		RetiredLoans:   make(map[string][]loanRecord),
	}

	for _, def := range m.Properties(true) {
		doc.Properties[def.SpecialName] = propertyRecord{
			Name:        def.Name,
			SpecialName: def.SpecialName,
			ValueType:   def.ValueType,
			Unit:        def.Unit,
			Select:      def.Select,
			NoEdit:      def.NoEdit,
			Mandatory:   def.Mandatory,
			Retired:     !m.PropertyActive(def),
		}
	}

	for _, cat := range m.Categories() {
		rec := categoryRecord{Description: cat.Description}
		for _, it := range m.RegisteredItems(cat) {
			rec.RegisteredItems = append(rec.RegisteredItems, it.ID)
		}
		members := make([]string, 0, len(cat.Properties))
		for def := range cat.Properties {
			members = append(members, def.SpecialName)
		}
		sort.Strings(members)
		rec.Properties = members
		for _, def := range cat.PropertiesOrder {
			rec.PropertiesOrder = append(rec.PropertiesOrder, def.Name)
		}
		doc.Categories[cat.Name] = rec
	}

	for _, it := range m.ActiveItems() {
		doc.Items[it.ID] = encodeItem(it)
	}
	for _, it := range m.RetiredItems() {
		doc.RetiredItems[it.ID] = encodeItem(it)
	}

	for _, p := range m.ActivePersons() {
		doc.Persons[p.ID] = encodePerson(m, p)
	}
	for _, p := range m.RetiredPersons() {
		doc.RetiredPersons[p.ID] = encodePerson(m, p)
	}

	for _, it := range m.LoanedItems() {
		for _, loan := range m.OpenLoans(it) {
			doc.Loans[it.ID] = append(doc.Loans[it.ID], encodeLoan(loan))
		}
	}
	for _, it := range m.ItemsWithClosedLoans() {
		for _, loan := range m.ClosedLoans(it) {
			doc.RetiredLoans[it.ID] = append(doc.RetiredLoans[it.ID], encodeLoan(loan))
		}
	}
	return doc
}

func encodeItem(it *types.Item) itemRecord {
	rec := itemRecord{
		Category: it.Category.Name,
		Notes:    make(map[string]string, len(it.Notes)),
	}
	keys := make([]string, 0, len(it.Values))
	for k := range it.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rec.Properties = append(rec.Properties, map[string]any{k: it.Values[k].Value})
	}
	for ts, text := range it.Notes {
		rec.Notes[strconv.FormatInt(ts, 10)] = text
	}
	return rec
}

func encodePerson(m *depot.Manager, p *types.Person) personRecord {
	rec := personRecord{
		Name:     p.Name,
		Surname:  p.Surname,
		Birthday: p.Birthday.Format(),
		Place:    p.Place,
		Note:     p.Note,
	}
	for _, loan := range m.OpenLoansFor(p) {
		rec.Loans = append(rec.Loans, loan.ID)
	}
	return rec
}

func encodeLoan(loan *types.Loan) loanRecord {
	return loanRecord{
		ID:        loan.ID,
		Person:    loan.Person.ID,
		Date:      loan.Date.Format(types.DateLayout),
		Note:      loan.Note,
		Timestamp: float64(loan.Timestamp.UnixNano()) / float64(time.Second),
		Returned:  loan.Returned.Format(),
		Finished:  loan.Finished,
	}
}

// decode rebuilds a manager from a document in dependency order: properties,
// categories, items, persons, loans. Unresolvable references are dropped.
func decode(doc *document) *depot.Manager {
	m := depot.NewManager()

	// Properties first; everything else resolves against the registry.
	defsByKey := make(map[string]*types.PropertyDefinition, len(doc.Properties))
	propKeys := make([]string, 0, len(doc.Properties))
	for key := range doc.Properties {
		propKeys = append(propKeys, key)
	}
	sort.Strings(propKeys)
	for _, key := range propKeys {
		rec := doc.Properties[key]
		name := rec.Name
		if name == "" {
			name = key
		}
		def, err := m.RestoreProperty(types.PropertySpec{
			Name:      name,
			ValueType: rec.ValueType,
			Unit:      rec.Unit,
			Mandatory: rec.Mandatory,
			Select:    rec.Select,
			NoEdit:    rec.NoEdit,
		}, rec.Retired)
		if err != nil {
			continue // a property that cannot be restored is dropped
		}
		defsByKey[strings.ToLower(key)] = def
		defsByKey[strings.ToLower(rec.SpecialName)] = def
	}
	resolve := func(name string) *types.PropertyDefinition {
		if def, ok := defsByKey[strings.ToLower(name)]; ok {
			return def
		}
		return m.Registry().Get(name)
	}

	catKeys := make([]string, 0, len(doc.Categories))
	for code := range doc.Categories {
		catKeys = append(catKeys, code)
	}
	sort.Strings(catKeys)
	for _, code := range catKeys {
		rec := doc.Categories[code]
		var ordered []*types.PropertyDefinition
		seen := make(map[*types.PropertyDefinition]bool)
		for _, display := range rec.PropertiesOrder {
			if def := resolve(display); def != nil && !seen[def] {
				ordered = append(ordered, def)
				seen[def] = true
			}
		}
		// Membership entries missing from the order list are appended; the
		// two sections can disagree after a partial write.
		for _, special := range rec.Properties {
			if def := resolve(special); def != nil && !seen[def] {
				ordered = append(ordered, def)
				seen[def] = true
			}
		}
		refs := make([]any, len(ordered))
		for i, def := range ordered {
			refs[i] = def
		}
		m.AddCategory(code, rec.Description, refs)
	}

	decodeItems(m, doc.Items, false, resolve)
	decodeItems(m, doc.RetiredItems, true, resolve)
	decodePersons(m, doc.Persons, false)
	decodePersons(m, doc.RetiredPersons, true)
	decodeLoans(m, doc.Loans, false)
	decodeLoans(m, doc.RetiredLoans, true)
	return m
}

func decodeItems(m *depot.Manager, recs map[string]itemRecord, retired bool, resolve func(string) *types.PropertyDefinition) {
	for id, rec := range recs {
		cat := m.Category(rec.Category)
		if cat == nil {
			continue // item referencing an unknown category is dropped
		}
		it := &types.Item{
			ID:       id,
			Category: cat,
			Values:   make(map[string]*types.PropertyValue),
			Notes:    make(map[int64]string, len(rec.Notes)),
		}
		for _, pair := range rec.Properties {
			for name, v := range pair {
				if def := resolve(name); def != nil {
					it.Values[def.SpecialName] = types.NewValue(def, v)
				}
			}
		}
		for key, text := range rec.Notes {
			ts, err := strconv.ParseFloat(key, 64)
			if err != nil {
				continue
			}
			it.Notes[int64(ts)] = text
		}
		m.RestoreItem(it, retired)
	}
}

func decodePersons(m *depot.Manager, recs map[string]personRecord, retired bool) {
	for id, rec := range recs {
		m.RestorePerson(&types.Person{
			ID:       id,
			Name:     rec.Name,
			Surname:  rec.Surname,
			Birthday: types.ParseDate(rec.Birthday),
			Place:    rec.Place,
			Note:     rec.Note,
		}, retired)
	}
}

func decodeLoans(m *depot.Manager, recs map[string][]loanRecord, closed bool) {
	for itemID, loans := range recs {
		it := m.ItemByID(itemID)
		if it == nil {
			continue // loans on an unresolvable item are dropped
		}
		for _, rec := range loans {
			person := m.PersonByID(rec.Person)
			if person == nil {
				continue
			}
			loan := &types.Loan{
				ID:       rec.ID,
				Item:     it,
				Person:   person,
				Note:     rec.Note,
				Returned: types.ParseDate(rec.Returned),
				Finished: rec.Finished || closed,
			}
			if loan.ID == "" {
				loan.ID = types.NewID()
			}
			if t, ok := types.ParseDate(rec.Date).Time(); ok {
				loan.Date = t
			}
			if rec.Timestamp > 0 {
				sec := int64(rec.Timestamp)
				nsec := int64((rec.Timestamp - float64(sec)) * float64(time.Second))
				loan.Timestamp = time.Unix(sec, nsec)
			}
			m.RestoreLoan(loan, closed)
		}
	}
}
