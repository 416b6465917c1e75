// Command beangen generates bean descriptors for go:generate.
//
// A bean type is any named, non-generic type with a usable zero value or a
// New<Type> constructor. beangen scans a package directory, finds the
// requested types and their setter methods, and writes one
// <Type>Descriptor() func per type plus a registration func that adds them
// all to a beans.Catalog.
//
// Setter discovery
//
// A method is a setter when its name is Set followed by an upper-case letter,
// it takes exactly one parameter, and it returns nothing. The property name
// is the rest of the method name with its first letter lowered:
//
//	SetPort(int32)        -> "port", literal, t.Int32
//	SetMailService(Sender) -> "mailService", reference, beans.WithRef
//
// Parameters of type string, bool, rune, byte, int8, int16, int32, int64,
// int, float32 and float64 are literal properties. Any other parameter type
// is a reference to another bean.
//
// Factories
//
// New<Type>() *Type is wrapped with beans.Constructor, and
// New<Type>() (*Type, error) is used as-is. Without either, the zero value
// is used through beans.Zero.
//
// Typical go:generate usage
//
//	//go:generate go run github.com/sghaida/ioc/cmd/beangen -type MailService,UserService
//
// Flags
//
//	-type      comma-separated type names (required)
//	-dir       package directory to scan (default ".")
//	-out       output path (default <dir>/beans.gen.go)
//	-prefix    definition type-name prefix (default: the package name)
//	-register  name of the registration func (default RegisterBeans)
//
// Exit codes are 0 on success, 1 when generation fails and 2 on usage errors.
package main
