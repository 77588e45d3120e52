package types

// Category is a user-defined schema for items: a short unique code, a display
// description, and an ordered list of property definitions that doubles as
// the column order of the view layer. Membership and order are kept in
// parallel; duplicates are forbidden.
type Category struct {
	Name            string // unique code, the catalog key
	Description     string
	Properties      map[*PropertyDefinition]bool
	PropertiesOrder []*PropertyDefinition
}

// NewCategory creates a category bound to the given ordered properties.
// Duplicate entries are dropped, keeping the first occurrence.
func NewCategory(name, description string, properties []*PropertyDefinition) *Category {
	c := &Category{
		Name:        name,
		Description: description,
		Properties:  make(map[*PropertyDefinition]bool, len(properties)),
	}
	for _, def := range properties {
		c.AddProperty(def)
	}
	return c
}

// Has reports whether def is part of this category's schema.
func (c *Category) Has(def *PropertyDefinition) bool {
	return c.Properties[def]
}

// AddProperty appends def to the schema. Reports whether it was added;
// already-present definitions and nil are no-ops.
func (c *Category) AddProperty(def *PropertyDefinition) bool {
	if def == nil || c.Properties[def] {
		return false
	}
	c.Properties[def] = true
	c.PropertiesOrder = append(c.PropertiesOrder, def)
	return true
}

// RemoveProperty drops def from the schema and the order. Reports whether it
// was present; removal of an absent definition is a no-op.
func (c *Category) RemoveProperty(def *PropertyDefinition) bool {
	if def == nil || !c.Properties[def] {
		return false
	}
	delete(c.Properties, def)
	for i, d := range c.PropertiesOrder {
		if d == def {
			c.PropertiesOrder = append(c.PropertiesOrder[:i], c.PropertiesOrder[i+1:]...)
			break
		}
	}
	return true
}

// SetProperties replaces the schema with the given ordered list, deduplicated.
func (c *Category) SetProperties(ordered []*PropertyDefinition) {
	c.Properties = make(map[*PropertyDefinition]bool, len(ordered))
	c.PropertiesOrder = nil
	for _, def := range ordered {
		c.AddProperty(def)
	}
}

// MandatoryProperties returns the mandatory definitions in schema order.
func (c *Category) MandatoryProperties() []*PropertyDefinition {
	var defs []*PropertyDefinition
	for _, def := range c.PropertiesOrder {
		if def.Mandatory {
			defs = append(defs, def)
		}
	}
	return defs
}
