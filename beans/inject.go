package beans

import (
	"fmt"
	"reflect"
)

// inject wires every property of def into bean, in property order.
//
// Literals are coerced to the setter's kind; references are resolved through
// lookup, which must already see every bean of the context. Any failure is
// returned as *InjectionError.
func inject(bean *Bean, desc *Descriptor, def Definition, lookup func(id string) (*Bean, bool)) error {
	for _, p := range def.Properties {
		if err := injectProperty(bean, desc, p, lookup); err != nil {
			return &InjectionError{BeanID: bean.ID, Property: p.Name, Err: err}
		}
	}
	return nil
}

func injectProperty(bean *Bean, desc *Descriptor, p Property, lookup func(id string) (*Bean, bool)) error {
	s, ok := desc.setters[p.Name]
	if !ok {
		return &UnknownPropertyError{Type: desc.name, Property: p.Name}
	}

	switch {
	case s.ref && !p.Value.IsRef():
		return &ValueKindError{Want: RefValue, Got: LiteralValue}
	case !s.ref && p.Value.IsRef():
		return &ValueKindError{Want: LiteralValue, Got: RefValue}
	}

	var arg any
	if s.ref {
		id := p.Value.Text()
		target, ok := lookup(id)
		if !ok {
			return &UnresolvedReferenceError{Ref: id}
		}
		if !s.accepts(target.Value) {
			return &ReferenceTypeError{Ref: id, Want: s.want, Got: typeString(target.Value)}
		}
		arg = target.Value
	} else {
		v, err := Coerce(s.kind, p.Value.Text())
		if err != nil {
			return err
		}
		arg = v
	}

	if err := safeApply(s, bean.Value, arg); err != nil {
		return err
	}
	if s.ref {
		bean.Deps[p.Name] = p.Value.Text()
	}
	return nil
}

// safeApply runs a setter and converts a panic into ErrSetterPanic.
func safeApply(s setter, target, arg any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrSetterPanic, rec)
		}
	}()
	s.apply(target, arg)
	return nil
}

func typeString(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
