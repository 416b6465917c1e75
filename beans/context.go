package beans

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog"
)

// State is the lifecycle position of a Context.
type State uint8

const (
	// StateUninitialized is a context that has not been started.
	StateUninitialized State = iota
	// StateReady is a context whose beans are instantiated and wired.
	StateReady
	// StateFailed is a context whose last Start failed; it holds no beans.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used during Start. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// WithReader wires the definition source; equivalent to calling SetReader.
func WithReader(r DefinitionReader) Option {
	return func(c *Context) { c.reader = r }
}

// Context owns the beans built from one set of definitions and answers
// queries about them.
//
// Start runs in two phases: every definition is instantiated, in order,
// before any property is wired, so references may point forward or at each
// other. A Context is not a process-wide singleton; whoever calls Start owns
// it and hands it to consumers.
//
// Queries are safe for concurrent use. While Start is building, the context
// is StateUninitialized and queries return ErrNotStarted, including queries
// made from factories and setters.
type Context struct {
	mu       sync.RWMutex
	resolver TypeResolver
	reader   DefinitionReader
	log      zerolog.Logger

	state State
	beans map[string]*Bean
	order []*Bean
}

// New returns an unstarted Context resolving type names through resolver.
func New(resolver TypeResolver, opts ...Option) *Context {
	if resolver == nil {
		resolver = NewCatalog()
	}
	c := &Context{resolver: resolver, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// NewFromReader wires reader and starts the context.
func NewFromReader(resolver TypeResolver, reader DefinitionReader, opts ...Option) (*Context, error) {
	c := New(resolver, opts...)
	c.SetReader(reader)
	if err := c.Start(); err != nil {
		return c, err
	}
	return c, nil
}

// SetReader wires the definition source used by the next Start.
func (c *Context) SetReader(r DefinitionReader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reader = r
}

// State reports the lifecycle state.
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start reads the definitions, instantiates one bean per definition and then
// wires every property.
//
// Any failure is fatal: the context moves to StateFailed and keeps no beans.
// Calling Start again rebuilds every bean from scratch.
//
// The lock is not held while definitions are read and beans are built.
func (c *Context) Start() error {
	c.mu.Lock()
	reader := c.reader
	c.beans, c.order, c.state = nil, nil, StateUninitialized
	c.mu.Unlock()

	beans, order, err := c.build(reader)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFailed
		c.log.Error().Err(err).Msg("context start failed")
		return err
	}

	c.beans, c.order, c.state = beans, order, StateReady
	c.log.Info().Int("beans", len(order)).Msg("context started")
	return nil
}

func (c *Context) build(reader DefinitionReader) (map[string]*Bean, []*Bean, error) {
	if reader == nil {
		return nil, nil, ErrNoReader
	}
	defs, err := reader.Definitions()
	if err != nil {
		return nil, nil, fmt.Errorf("beans: reading definitions: %w", err)
	}

	beans := make(map[string]*Bean, len(defs))
	order := make([]*Bean, 0, len(defs))
	descs := make([]*Descriptor, 0, len(defs))

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, nil, &InstantiationError{BeanID: def.ID, Type: def.Type, Err: err}
		}
		if _, dup := beans[def.ID]; dup {
			return nil, nil, &InstantiationError{BeanID: def.ID, Type: def.Type, Err: &DuplicateBeanError{ID: def.ID}}
		}

		desc, ok := c.resolver.Lookup(def.Type)
		if !ok {
			return nil, nil, &InstantiationError{BeanID: def.ID, Type: def.Type, Err: &UnknownTypeError{Type: def.Type}}
		}
		val, err := c.resolver.Instantiate(def.Type)
		if err != nil {
			return nil, nil, &InstantiationError{BeanID: def.ID, Type: def.Type, Err: err}
		}

		b := newBean(def.ID, def.Type, val)
		beans[def.ID] = b
		order = append(order, b)
		descs = append(descs, desc)
		c.log.Debug().Str("bean", def.ID).Str("type", def.Type).Msg("bean instantiated")
	}

	lookup := func(id string) (*Bean, bool) {
		b, ok := beans[id]
		return b, ok
	}
	for i, def := range defs {
		if err := inject(order[i], descs[i], def, lookup); err != nil {
			return nil, nil, err
		}
		c.log.Debug().Str("bean", def.ID).Int("properties", len(def.Properties)).Msg("bean wired")
	}
	return beans, order, nil
}

// Bean returns the instance stored under name.
func (c *Context) Bean(name string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateReady {
		return nil, ErrNotStarted
	}
	b, ok := c.beans[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return b.Value, nil
}

// Lookup returns a copy of the Bean wrapper stored under name. The copy
// shares Value with the context.
func (c *Context) Lookup(name string) (*Bean, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.beans[name]
	if !ok {
		return nil, false
	}
	return b.clone(), true
}

// Beans returns copies of the bean wrappers in definition order.
func (c *Context) Beans() []*Bean {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Bean, len(c.order))
	for i, b := range c.order {
		out[i] = b.clone()
	}
	return out
}

// Len returns the number of beans.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// beanOfType applies the exact-one-match rule over all beans.
func (c *Context) beanOfType(conforms func(any) bool, typeName string) (*Bean, error) {
	if c.state != StateReady {
		return nil, ErrNotStarted
	}
	var found []*Bean
	for _, b := range c.order {
		if b.Value != nil && conforms(b.Value) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return nil, &NotFoundError{Type: typeName}
	case 1:
		return found[0], nil
	default:
		ids := make([]string, len(found))
		for i, b := range found {
			ids[i] = b.ID
		}
		return nil, &MultipleBeansError{Type: typeName, IDs: ids}
	}
}

// GetBean returns the only bean whose value conforms to T, either by being
// exactly T or, when T is an interface, by implementing it.
//
// It returns *NotFoundError when nothing conforms and *MultipleBeansError when
// more than one bean does.
func GetBean[T any](c *Context) (T, error) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.beanOfType(conformsTo[T], typeName[T]())
	if err != nil {
		return zero, err
	}
	return b.Value.(T), nil
}

// GetNamedBean resolves T with the GetBean rule and then checks that the bean
// stored under name is that same instance. A missing name or a mismatch is a
// *NotFoundError.
func GetNamedBean[T any](c *Context, name string) (T, error) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.beanOfType(conformsTo[T], typeName[T]())
	if err != nil {
		return zero, err
	}
	if named, ok := c.beans[name]; !ok || named != b {
		return zero, &NotFoundError{Name: name, Type: typeName[T]()}
	}
	return b.Value.(T), nil
}

// MustGetBean returns GetBean's result or panics.
// Useful in composition roots where a missing bean should fail fast.
func MustGetBean[T any](c *Context) T {
	v, err := GetBean[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

func conformsTo[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
