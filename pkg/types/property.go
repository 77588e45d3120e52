package types

import "sort"

// Property value types determine what values a property accepts.
const (
	ValueTypeString  = "string"
	ValueTypeInteger = "integer"
	ValueTypeFloat   = "float"
)

// validValueTypes is the set of recognized property value types.
var validValueTypes = map[string]bool{
	ValueTypeString:  true,
	ValueTypeInteger: true,
	ValueTypeFloat:   true,
}

// IsValidValueType reports whether the given string is a recognized value type.
func IsValidValueType(vt string) bool {
	return validValueTypes[vt]
}

// PropertyDefinition describes a named, typed attribute kind that items can
// carry, such as "length" in centimeters. Definitions are created at runtime
// and never deleted, only retired; historical items referencing a retired
// definition keep working.
type PropertyDefinition struct {
	Name        string   // display name as entered by the user
	SpecialName string   // normalized identity key (alnum + underscore, accents stripped)
	ValueType   string   // one of the ValueType constants
	Unit        string   // optional display suffix, e.g. "cm"
	Mandatory   bool     // items of a category declaring this must set a value
	Select      []string // ordered allowed values; empty means free input
	NoEdit      bool     // protects identity-like fields from editing
	Retired     bool     // soft-disabled; kept for historical data
}

// PropertySpec carries the user-supplied parameters for defining a property.
type PropertySpec struct {
	Name      string
	ValueType string // defaults to ValueTypeString when empty
	Unit      string
	Mandatory bool
	Select    []string
	NoEdit    bool
}

// Registry maps normalized property names to their definitions. Lookups are
// case-insensitive. Definitions are never removed; redefining a name replaces
// the registry entry, so callers creating genuinely new properties must check
// Get first.
type Registry struct {
	defs map[string]*PropertyDefinition
}

// NewRegistry returns an empty property registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*PropertyDefinition)}
}

// Define creates a property definition from spec and registers it under the
// normalized name, replacing any existing entry for that key.
// Returns ErrInvalidName if the name normalizes to an empty key and
// ErrInvalidValueType if the value type is not recognized.
func (r *Registry) Define(spec PropertySpec) (*PropertyDefinition, error) {
	special := NormalizeName(spec.Name)
	if special == "" {
		return nil, ErrInvalidName
	}
	vt := spec.ValueType
	if vt == "" {
		vt = ValueTypeString
	}
	if !validValueTypes[vt] {
		return nil, ErrInvalidValueType
	}
	def := &PropertyDefinition{
		Name:        spec.Name,
		SpecialName: special,
		ValueType:   vt,
		Unit:        spec.Unit,
		Mandatory:   spec.Mandatory,
		Select:      append([]string(nil), spec.Select...),
		NoEdit:      spec.NoEdit,
	}
	r.defs[normalizeKey(spec.Name)] = def
	return def, nil
}

// Get returns the definition registered under the given display or special
// name, or nil if none exists. Lookup is case-insensitive and tolerant of
// accents and punctuation.
func (r *Registry) Get(name string) *PropertyDefinition {
	return r.defs[normalizeKey(name)]
}

// Definitions returns all registered definitions ordered by special name.
func (r *Registry) Definitions() []*PropertyDefinition {
	defs := make([]*PropertyDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].SpecialName < defs[j].SpecialName })
	return defs
}
