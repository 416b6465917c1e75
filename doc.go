// Package ioc builds object graphs from declarative bean definitions.
//
// A definition names a bean id, a registered type name and a list of
// properties. Each property is either a literal, coerced to the setter's
// parameter type, or a ref to another bean's id. A context instantiates
// every definition first and wires properties second, so refs may point
// forward or at each other.
//
// Packages:
//   - beans: definitions, type descriptors, the catalog and the context
//   - reader: definition files in xml, yaml, toml and hcl
//   - cmd/beangen: generates descriptors from Set<X> methods (go:generate)
//   - cmd/beanctl: validates and converts definition files
//   - examples/mail: a small wired graph loaded from context.xml
//
// Typical wiring:
//
//	catalog := beans.NewCatalog()
//	if err := mail.RegisterBeans(catalog); err != nil { ... }
//	ctx, err := beans.NewFromReader(catalog, reader.New("context.xml"))
//	users, err := beans.GetBean[*mail.UserService](ctx)
package ioc
