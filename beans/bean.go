package beans

import "maps"

// Bean wraps one constructed instance owned by a Context.
//
// Value is created once during Start and is never replaced; injection only
// mutates its state. Deps records, per reference property, the id of the
// bean that was injected, for introspection and debugging. Context hands out
// copies, so changing a returned Bean does not affect the context.
type Bean struct {
	ID    string
	Type  string
	Value any
	Deps  map[string]string
}

func newBean(id, typeName string, value any) *Bean {
	return &Bean{ID: id, Type: typeName, Value: value, Deps: make(map[string]string)}
}

func (b *Bean) clone() *Bean {
	cp := *b
	cp.Deps = maps.Clone(b.Deps)
	return &cp
}

// HasDep reports whether a reference was injected for property.
func (b *Bean) HasDep(property string) bool {
	if b == nil || b.Deps == nil {
		return false
	}
	_, ok := b.Deps[property]
	return ok
}

// DepID returns the id of the bean injected for property.
func (b *Bean) DepID(property string) (string, bool) {
	if b == nil || b.Deps == nil {
		return "", false
	}
	id, ok := b.Deps[property]
	return id, ok
}

// ValueAs returns the bean's value typed as T.
//
// ok is false if b is nil or the value does not conform to T.
func ValueAs[T any](b *Bean) (T, bool) {
	var zero T
	if b == nil || b.Value == nil {
		return zero, false
	}
	v, ok := b.Value.(T)
	return v, ok
}
