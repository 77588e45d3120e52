package types

import (
	"sort"
	"time"
)

// Item is a single loanable physical unit. It belongs to exactly one
// category, fixed at construction, and holds concrete values for a subset of
// that category's property definitions. The ID is the join key in snapshots
// and is stable for the item's lifetime.
type Item struct {
	ID       string
	Category *Category
	Values   map[string]*PropertyValue // keyed by SpecialName
	Notes    map[int64]string          // free-text remarks keyed by unix-second timestamp
}

// NewItem creates an item of the given category from the supplied values,
// keyed by property name (display or special form). Values for properties
// not declared on the category are silently dropped. Returns a
// *ValidationError listing every mandatory property of the category that has
// no entry in values.
func NewItem(category *Category, values map[string]any) (*Item, error) {
	it := &Item{
		ID:       NewID(),
		Category: category,
		Values:   make(map[string]*PropertyValue),
		Notes:    make(map[int64]string),
	}

	byKey := make(map[string]*PropertyDefinition, len(category.PropertiesOrder))
	for _, def := range category.PropertiesOrder {
		byKey[normalizeKey(def.SpecialName)] = def
	}
	for name, v := range values {
		def, ok := byKey[normalizeKey(name)]
		if !ok {
			continue // undeclared properties are ignored
		}
		it.Values[def.SpecialName] = NewValue(def, v)
	}

	var missing []string
	for _, def := range category.MandatoryProperties() {
		if _, ok := it.Values[def.SpecialName]; !ok {
			missing = append(missing, def.SpecialName)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Category: category.Name, Missing: missing}
	}
	return it, nil
}

// NewEmptyItem creates an item carrying a blank value for every property of
// the category, bypassing mandatory validation. Used for rows the operator
// fills in afterwards.
func NewEmptyItem(category *Category) *Item {
	it := &Item{
		ID:       NewID(),
		Category: category,
		Values:   make(map[string]*PropertyValue, len(category.PropertiesOrder)),
		Notes:    make(map[int64]string),
	}
	for _, def := range category.PropertiesOrder {
		it.Values[def.SpecialName] = EmptyValue(def)
	}
	return it
}

// Value returns the holder for def, materializing an empty one on first
// access if the item does not carry it yet.
func (it *Item) Value(def *PropertyDefinition) *PropertyValue {
	if pv, ok := it.Values[def.SpecialName]; ok {
		return pv
	}
	pv := EmptyValue(def)
	it.Values[def.SpecialName] = pv
	return pv
}

// Lookup returns the value holder for the given property name without
// materializing anything. The second result reports whether the item carries
// that property.
func (it *Item) Lookup(name string) (*PropertyValue, bool) {
	key := NormalizeName(name)
	if pv, ok := it.Values[key]; ok {
		return pv, true
	}
	// Display names and special names normalize differently only by case.
	for special, pv := range it.Values {
		if normalizeKey(special) == normalizeKey(name) {
			return pv, true
		}
	}
	return nil, false
}

// HasProperty reports whether the item carries a value holder for def.
func (it *Item) HasProperty(def *PropertyDefinition) bool {
	_, ok := it.Values[def.SpecialName]
	return ok
}

// AddProperty attaches an empty-valued instance of def. Reports whether it
// was added; an already-present property is left untouched.
func (it *Item) AddProperty(def *PropertyDefinition) bool {
	if _, ok := it.Values[def.SpecialName]; ok {
		return false
	}
	it.Values[def.SpecialName] = EmptyValue(def)
	return true
}

// RemoveProperty detaches def from the item. Returns a
// *MandatoryPropertyError when def is mandatory and ignoreMandatory is
// false. Removing an absent property is a no-op.
func (it *Item) RemoveProperty(def *PropertyDefinition, ignoreMandatory bool) error {
	if _, ok := it.Values[def.SpecialName]; !ok {
		return nil
	}
	if def.Mandatory && !ignoreMandatory {
		return &MandatoryPropertyError{Property: def.Name}
	}
	delete(it.Values, def.SpecialName)
	return nil
}

// AddNote records a free-text remark at the given timestamp, or now when
// zero. A colliding timestamp overwrites the earlier note.
func (it *Item) AddNote(text string, timestamp int64) {
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}
	it.Notes[timestamp] = text
}

// RemoveNote drops the note recorded at the given timestamp, if any.
func (it *Item) RemoveNote(timestamp int64) {
	delete(it.Notes, timestamp)
}

// NoteTimestamps returns the note keys in chronological order.
func (it *Item) NoteTimestamps() []int64 {
	keys := make([]int64, 0, len(it.Notes))
	for ts := range it.Notes {
		keys = append(keys, ts)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
