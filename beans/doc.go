// Package beans builds an object graph from declarative bean definitions.
//
// A Definition names a bean id, a registered type name and a list of
// properties. Each property value is either a Literal, coerced to the setter's
// primitive kind, or a Ref to another bean, injected as that bean's instance.
//
// Types are made known to a Catalog through Descriptors: a zero-argument
// factory plus a table of typed setters, built once at registration time.
// cmd/beangen writes descriptors for types that follow the Set<Property>
// convention, so wiring involves no runtime method scanning.
//
// Lifecycle
//
// A Context starts from a DefinitionReader:
//
//   - every definition is instantiated, in order
//   - then every property of every bean is wired, in a single pass
//
// Because all instances exist before wiring starts, references may point
// forward or at each other. Any failure aborts Start and leaves the context
// without beans.
//
// Queries
//
//   - GetBean[T]: the one bean conforming to T (exact type or interface)
//   - GetNamedBean[T]: as GetBean, cross-checked against the bean named name
//   - (*Context).Bean: direct lookup by id
//
// Quick start
//
//	cat := beans.NewCatalog().MustRegister(
//		beans.Describe("mail.MailService", beans.Zero[MailService]()).
//			String("protocol", (*MailService).SetProtocol).
//			Int32("port", (*MailService).SetPort).
//			Descriptor(),
//	)
//	ctx, err := beans.NewFromReader(cat, reader.New("context.xml"))
//	if err != nil {
//		// handle startup failure
//	}
//	mail, err := beans.GetBean[*MailService](ctx)
//
// Import
//
//	"github.com/sghaida/ioc/beans"
package beans
