package beans

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SetterPrefix is prepended to a capitalized property name to form the
// conventional setter method name.
const SetterPrefix = "Set"

// SetterName derives the setter method name for a property: "port" -> "SetPort".
func SetterName(property string) string {
	if property == "" {
		return SetterPrefix
	}
	r, size := utf8.DecodeRuneInString(property)
	return SetterPrefix + string(unicode.ToUpper(r)) + property[size:]
}

// PropertyName is the inverse of SetterName: "SetPort" -> "port".
// ok is false if method does not follow the convention.
func PropertyName(method string) (string, bool) {
	rest, found := strings.CutPrefix(method, SetterPrefix)
	if !found || rest == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + rest[size:], true
}

var (
	errNilFactory = errors.New("nil factory")
	errNilSetter  = errors.New("nil setter")
)

// setter is one entry of a descriptor's property table.
type setter struct {
	// kind is the coercion kind for literal setters; unused for references.
	kind Kind
	ref  bool
	// want names the dependency type a reference setter accepts.
	want    string
	accepts func(dep any) bool
	apply   func(target, arg any)
}

// Descriptor is the registration-time description of a bean type: how to
// construct a zero-argument instance and which typed setter wires each
// property. It replaces runtime method-set scanning; build one with Describe.
type Descriptor struct {
	name    string
	typ     reflect.Type
	factory func() (any, error)
	setters map[string]setter
	order   []string
	err     error
}

// Name is the type name definitions refer to.
func (d *Descriptor) Name() string { return d.name }

// Type is the runtime type of instances the factory produces.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// Properties lists the settable properties in registration order.
func (d *Descriptor) Properties() []string {
	return append([]string(nil), d.order...)
}

// IsRef reports whether property is wired by reference. ok is false if the
// property has no setter.
func (d *Descriptor) IsRef(property string) (ref bool, ok bool) {
	s, ok := d.setters[property]
	return s.ref, ok
}

// Err returns the first registration mistake recorded while describing the type,
// such as a duplicate setter.
func (d *Descriptor) Err() error { return d.err }

func (d *Descriptor) add(property string, s setter) {
	if d.err != nil {
		return
	}
	if _, dup := d.setters[property]; dup {
		d.err = &DuplicateSetterError{Type: d.name, Property: property}
		return
	}
	d.setters[property] = s
	d.order = append(d.order, property)
}

// Type describes T for a Catalog. Setters are registered with its chaining
// methods and with WithRef:
//
//	desc := beans.Describe("mail.MailService", beans.Constructor(NewMailService)).
//		String("protocol", (*MailService).SetProtocol).
//		Int32("port", (*MailService).SetPort).
//		Descriptor()
type Type[T any] struct{ d *Descriptor }

// Describe starts a descriptor for *T registered under name.
func Describe[T any](name string, factory func() (*T, error)) *Type[T] {
	d := &Descriptor{
		name:    name,
		typ:     reflect.TypeOf((**T)(nil)).Elem(),
		setters: make(map[string]setter),
	}
	if factory == nil {
		d.err = &DefinitionError{BeanID: name, Reason: errNilFactory.Error()}
	} else {
		d.factory = func() (any, error) {
			v, err := factory()
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, ErrNilInstance
			}
			return v, nil
		}
	}
	return &Type[T]{d: d}
}

// Constructor adapts an infallible zero-argument constructor.
func Constructor[T any](ctor func() *T) func() (*T, error) {
	if ctor == nil {
		return nil
	}
	return func() (*T, error) { return ctor(), nil }
}

// Zero returns a factory producing new(T).
func Zero[T any]() func() (*T, error) {
	return func() (*T, error) { return new(T), nil }
}

// Descriptor returns the finished descriptor.
func (t *Type[T]) Descriptor() *Descriptor { return t.d }

func literal[T, V any](t *Type[T], kind Kind, property string, set func(*T, V)) *Type[T] {
	if set == nil {
		if t.d.err == nil {
			t.d.err = &DefinitionError{BeanID: t.d.name, Reason: errNilSetter.Error() + " for " + property}
		}
		return t
	}
	t.d.add(property, setter{
		kind:  kind,
		apply: func(target, arg any) { set(target.(*T), arg.(V)) },
	})
	return t
}

// String registers a string setter. The literal is passed through unchanged.
func (t *Type[T]) String(property string, set func(*T, string)) *Type[T] {
	return literal(t, KindString, property, set)
}

// Bool registers a bool setter.
func (t *Type[T]) Bool(property string, set func(*T, bool)) *Type[T] {
	return literal(t, KindBool, property, set)
}

// Char registers a rune setter.
func (t *Type[T]) Char(property string, set func(*T, rune)) *Type[T] {
	return literal(t, KindChar, property, set)
}

// Byte registers a byte setter.
func (t *Type[T]) Byte(property string, set func(*T, byte)) *Type[T] {
	return literal(t, KindByte, property, set)
}

// Int8 registers an int8 setter.
func (t *Type[T]) Int8(property string, set func(*T, int8)) *Type[T] {
	return literal(t, KindInt8, property, set)
}

// Int16 registers an int16 setter.
func (t *Type[T]) Int16(property string, set func(*T, int16)) *Type[T] {
	return literal(t, KindInt16, property, set)
}

// Int32 registers an int32 setter.
func (t *Type[T]) Int32(property string, set func(*T, int32)) *Type[T] {
	return literal(t, KindInt32, property, set)
}

// Int64 registers an int64 setter.
func (t *Type[T]) Int64(property string, set func(*T, int64)) *Type[T] {
	return literal(t, KindInt64, property, set)
}

// Int registers an int setter.
func (t *Type[T]) Int(property string, set func(*T, int)) *Type[T] {
	return literal(t, KindInt, property, set)
}

// Float32 registers a float32 setter.
func (t *Type[T]) Float32(property string, set func(*T, float32)) *Type[T] {
	return literal(t, KindFloat32, property, set)
}

// Float64 registers a float64 setter.
func (t *Type[T]) Float64(property string, set func(*T, float64)) *Type[T] {
	return literal(t, KindFloat64, property, set)
}

// WithRef registers a reference setter on t. The referenced bean's instance
// must conform to D; D may be a concrete pointer type or an interface.
//
// It is a function rather than a method because Go methods cannot declare
// their own type parameters.
func WithRef[T, D any](t *Type[T], property string, set func(*T, D)) *Type[T] {
	if set == nil {
		if t.d.err == nil {
			t.d.err = &DefinitionError{BeanID: t.d.name, Reason: errNilSetter.Error() + " for " + property}
		}
		return t
	}
	t.d.add(property, setter{
		ref:  true,
		want: reflect.TypeOf((*D)(nil)).Elem().String(),
		accepts: func(dep any) bool {
			_, ok := dep.(D)
			return ok
		},
		apply: func(target, arg any) { set(target.(*T), arg.(D)) },
	})
	return t
}
