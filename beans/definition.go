package beans

import (
	"strconv"
	"strings"
)

// ValueKind tags a property Value as a literal or a reference.
type ValueKind uint8

const (
	// LiteralValue is a scalar carried as text and coerced by the setter.
	LiteralValue ValueKind = iota
	// RefValue names another bean whose instance is injected.
	RefValue
)

// String returns "literal" or "ref".
func (k ValueKind) String() string {
	if k == RefValue {
		return "ref"
	}
	return "literal"
}

// Value is the right-hand side of a property: either Literal(text) or Ref(beanID).
type Value struct {
	kind ValueKind
	text string
}

// Literal returns a literal Value. A literal is never dereferenced, even when
// its text equals the id of another bean.
func Literal(text string) Value { return Value{kind: LiteralValue, text: text} }

// Ref returns a reference to the bean with the given id.
func Ref(beanID string) Value { return Value{kind: RefValue, text: beanID} }

// Kind reports whether v is a literal or a reference.
func (v Value) Kind() ValueKind { return v.kind }

// IsRef reports whether v is a reference.
func (v Value) IsRef() bool { return v.kind == RefValue }

// Text returns the literal text, or the referenced bean id.
func (v Value) Text() string { return v.text }

// Equal reports whether v and o carry the same kind and text.
func (v Value) Equal(o Value) bool { return v.kind == o.kind && v.text == o.text }

// String renders the value for diagnostics, e.g. "3000" or ref(mailService).
func (v Value) String() string {
	if v.kind == RefValue {
		return "ref(" + v.text + ")"
	}
	return strconv.Quote(v.text)
}

// Property is one named entry of a definition's property mapping.
type Property struct {
	Name  string
	Value Value
}

// Definition declares a bean: its id, the registered type name to construct,
// and the properties to wire into the instance.
//
// Definitions are produced by a DefinitionReader and treated as read-only.
// Properties keep document order; names are unique within a definition.
type Definition struct {
	ID         string
	Type       string
	Properties []Property
}

// Property returns the value for name, if present.
func (d Definition) Property(name string) (Value, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Refs returns the bean ids referenced by d, in property order.
func (d Definition) Refs() []string {
	var out []string
	for _, p := range d.Properties {
		if p.Value.IsRef() {
			out = append(out, p.Value.Text())
		}
	}
	return out
}

// Validate checks the definition in isolation.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return &DefinitionError{BeanID: d.ID, Reason: "missing id"}
	}
	if strings.TrimSpace(d.Type) == "" {
		return &DefinitionError{BeanID: d.ID, Reason: "missing type"}
	}
	seen := make(map[string]struct{}, len(d.Properties))
	for _, p := range d.Properties {
		if strings.TrimSpace(p.Name) == "" {
			return &DefinitionError{BeanID: d.ID, Reason: "property with empty name"}
		}
		if _, dup := seen[p.Name]; dup {
			return &DefinitionError{BeanID: d.ID, Reason: "duplicate property " + strconv.Quote(p.Name)}
		}
		seen[p.Name] = struct{}{}
		if p.Value.IsRef() && strings.TrimSpace(p.Value.Text()) == "" {
			return &DefinitionError{BeanID: d.ID, Reason: "property " + strconv.Quote(p.Name) + " references an empty id"}
		}
	}
	return nil
}

// ValidateGraph validates every definition and checks the set as a whole:
// ids must be unique and every Ref must name a defined bean.
//
// It needs no type information, so it can run before any Catalog exists.
func ValidateGraph(defs []Definition) error {
	ids := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := ids[d.ID]; dup {
			return &DuplicateBeanError{ID: d.ID}
		}
		ids[d.ID] = struct{}{}
	}
	for _, d := range defs {
		for _, p := range d.Properties {
			if !p.Value.IsRef() {
				continue
			}
			if _, ok := ids[p.Value.Text()]; !ok {
				return &InjectionError{
					BeanID:   d.ID,
					Property: p.Name,
					Err:      &UnresolvedReferenceError{Ref: p.Value.Text()},
				}
			}
		}
	}
	return nil
}
