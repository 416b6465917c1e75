package beans

import (
	"errors"
	"strconv"
)

var (
	// ErrBeanNotFound is the sentinel behind every NotFoundError.
	ErrBeanNotFound = errors.New("beans: bean not found")

	// ErrMultipleBeans is the sentinel behind every MultipleBeansError.
	ErrMultipleBeans = errors.New("beans: multiple beans for type")

	// ErrBeanInstantiation is the sentinel behind every InstantiationError.
	ErrBeanInstantiation = errors.New("beans: bean instantiation failed")

	// ErrInjection is the sentinel behind every InjectionError.
	ErrInjection = errors.New("beans: dependency injection failed")

	// ErrNotStarted is returned by queries on a context that is not Ready.
	ErrNotStarted = errors.New("beans: context not started")

	// ErrNoReader is returned by Start when no DefinitionReader was wired.
	ErrNoReader = errors.New("beans: no definition reader")

	// ErrFactoryPanic is returned if a type factory panics during instantiation.
	ErrFactoryPanic = errors.New("beans: panic during instantiation")

	// ErrSetterPanic is returned if a property setter panics during injection.
	ErrSetterPanic = errors.New("beans: panic during injection")

	// ErrNilInstance is returned when a factory reports success but yields nil.
	ErrNilInstance = errors.New("beans: factory returned nil instance")

	// ErrUnsupportedKind is returned when coercion is asked for a kind it does not know.
	ErrUnsupportedKind = errors.New("beans: unsupported coercion kind")
)

// NotFoundError is returned when a query matches no bean, or when a named
// lookup does not agree with the type-based lookup.
type NotFoundError struct {
	// Name is the bean id requested, if any.
	Name string
	// Type is the requested type, if any.
	Type string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	switch {
	case e.Name != "" && e.Type != "":
		// Example: beans: bean "mail" of type *mail.MailService not found
		return "beans: bean " + strconv.Quote(e.Name) + " of type " + e.Type + " not found"
	case e.Name != "":
		return "beans: bean " + strconv.Quote(e.Name) + " not found"
	default:
		return "beans: no bean of type " + e.Type
	}
}

// Unwrap exposes ErrBeanNotFound to errors.Is.
func (e *NotFoundError) Unwrap() error { return ErrBeanNotFound }

// MultipleBeansError is returned when a type-based lookup matches more than one bean.
type MultipleBeansError struct {
	Type string
	// IDs lists the matching bean ids in definition order.
	IDs []string
}

// Error implements the error interface.
func (e *MultipleBeansError) Error() string {
	msg := "beans: " + strconv.Itoa(len(e.IDs)) + " beans of type " + e.Type + ":"
	for i, id := range e.IDs {
		if i > 0 {
			msg += ","
		}
		msg += " " + strconv.Quote(id)
	}
	return msg
}

// Unwrap exposes ErrMultipleBeans to errors.Is.
func (e *MultipleBeansError) Unwrap() error { return ErrMultipleBeans }

// InstantiationError is returned by Start when a bean cannot be constructed.
type InstantiationError struct {
	BeanID string
	Type   string
	Err    error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	// Example: beans: cannot instantiate bean "mail" (mail.MailService): unknown type "mail.MailService"
	return "beans: cannot instantiate bean " + strconv.Quote(e.BeanID) + " (" + e.Type + "): " + e.Err.Error()
}

// Unwrap returns both the sentinel and the cause.
func (e *InstantiationError) Unwrap() []error { return []error{ErrBeanInstantiation, e.Err} }

// InjectionError is returned by Start when a property cannot be wired.
type InjectionError struct {
	BeanID   string
	Property string
	Err      error
}

// Error implements the error interface.
func (e *InjectionError) Error() string {
	return "beans: failed injecting " + strconv.Quote(e.Property) + " into bean " + strconv.Quote(e.BeanID) + ": " + e.Err.Error()
}

// Unwrap returns both the sentinel and the cause.
func (e *InjectionError) Unwrap() []error { return []error{ErrInjection, e.Err} }

// UnknownTypeError indicates a type name with no registered descriptor.
type UnknownTypeError struct{ Type string }

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return "beans: unknown type " + strconv.Quote(e.Type)
}

// DuplicateBeanError indicates two definitions sharing an id.
type DuplicateBeanError struct{ ID string }

// Error implements the error interface.
func (e *DuplicateBeanError) Error() string {
	return "beans: duplicate bean id " + strconv.Quote(e.ID)
}

// DuplicateTypeError indicates two descriptors registered under one type name.
type DuplicateTypeError struct{ Type string }

// Error implements the error interface.
func (e *DuplicateTypeError) Error() string {
	return "beans: type " + strconv.Quote(e.Type) + " already registered"
}

// DuplicateSetterError indicates a property with more than one setter on a type.
type DuplicateSetterError struct {
	Type     string
	Property string
}

// Error implements the error interface.
func (e *DuplicateSetterError) Error() string {
	return "beans: type " + strconv.Quote(e.Type) + " has more than one setter for " + strconv.Quote(e.Property)
}

// UnknownPropertyError indicates a property with no setter on the bean's type.
type UnknownPropertyError struct {
	Type     string
	Property string
}

// Error implements the error interface.
func (e *UnknownPropertyError) Error() string {
	// Example: beans: type "mail.MailService" has no setter SetPort for "port"
	return "beans: type " + strconv.Quote(e.Type) + " has no setter " + SetterName(e.Property) + " for " + strconv.Quote(e.Property)
}

// UnresolvedReferenceError indicates a Ref value naming a bean that does not exist.
type UnresolvedReferenceError struct{ Ref string }

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return "beans: reference to unknown bean " + strconv.Quote(e.Ref)
}

// ReferenceTypeError indicates a referenced bean that does not conform to the
// setter's parameter type.
type ReferenceTypeError struct {
	Ref  string
	Want string
	Got  string
}

// Error implements the error interface.
func (e *ReferenceTypeError) Error() string {
	return "beans: referenced bean " + strconv.Quote(e.Ref) + " is " + e.Got + ", want " + e.Want
}

// ValueKindError indicates a Literal given to a reference setter or a Ref given
// to a literal setter.
type ValueKindError struct {
	Want ValueKind
	Got  ValueKind
}

// Error implements the error interface.
func (e *ValueKindError) Error() string {
	return "beans: setter takes a " + e.Want.String() + " value, got a " + e.Got.String()
}

// CoercionError indicates a literal that cannot be converted to a setter's kind.
type CoercionError struct {
	Kind Kind
	Raw  string
	Err  error
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	// Example: beans: cannot coerce "abc" to int32: invalid syntax
	return "beans: cannot coerce " + strconv.Quote(e.Raw) + " to " + e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying parse error.
func (e *CoercionError) Unwrap() error { return e.Err }

// DefinitionError indicates a malformed bean definition.
type DefinitionError struct {
	BeanID string
	Reason string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	return "beans: invalid definition " + strconv.Quote(e.BeanID) + ": " + e.Reason
}
