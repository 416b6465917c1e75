package beans

import (
	"fmt"
	"sort"
)

// TypeResolver turns a definition's type name into a fresh instance. It is
// keyed by the type name written in definitions and has no side effects
// beyond running the factory.
//
// Expected usage:
//
//	desc, ok := res.Lookup("mail.MailService")
//	val, err := res.Instantiate("mail.MailService")
type TypeResolver interface {
	Lookup(typeName string) (*Descriptor, bool)
	Instantiate(typeName string) (any, error)
}

// Catalog is a simple in-memory TypeResolver.
// Register every type before starting a Context; a Catalog may be shared by
// any number of contexts.
type Catalog struct {
	types map[string]*Descriptor
}

func NewCatalog() *Catalog {
	return &Catalog{types: map[string]*Descriptor{}}
}

// Register adds descriptors. It rejects descriptors that recorded a
// registration mistake and names that are already registered; descriptors
// before the failing one stay registered.
func (c *Catalog) Register(descs ...*Descriptor) error {
	for _, d := range descs {
		if d == nil {
			continue
		}
		if err := d.Err(); err != nil {
			return err
		}
		if _, dup := c.types[d.name]; dup {
			return &DuplicateTypeError{Type: d.name}
		}
		c.types[d.name] = d
	}
	return nil
}

// MustRegister is Register that panics on error.
// Useful in package init or tests where a bad descriptor should fail fast.
func (c *Catalog) MustRegister(descs ...*Descriptor) *Catalog {
	if err := c.Register(descs...); err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the descriptor registered under typeName.
func (c *Catalog) Lookup(typeName string) (*Descriptor, bool) {
	d, ok := c.types[typeName]
	return d, ok
}

// Names returns the registered type names, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.types))
	for name := range c.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Instantiate runs the zero-argument factory for typeName and converts
// factory panics into errors.
func (c *Catalog) Instantiate(typeName string) (val any, err error) {
	d, ok := c.types[typeName]
	if !ok {
		return nil, &UnknownTypeError{Type: typeName}
	}
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			err = fmt.Errorf("%w: %v", ErrFactoryPanic, rec)
		}
	}()
	return d.factory()
}
