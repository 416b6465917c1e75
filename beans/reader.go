package beans

// DefinitionReader produces the ordered bean definitions a Context starts from.
// The Context depends only on this contract; package reader provides file
// formats.
type DefinitionReader interface {
	Definitions() ([]Definition, error)
}

// StaticReader serves definitions held in memory.
type StaticReader []Definition

// Definitions returns a copy of the slice.
func (r StaticReader) Definitions() ([]Definition, error) {
	return append([]Definition(nil), r...), nil
}

// ReaderFunc adapts a function to DefinitionReader.
type ReaderFunc func() ([]Definition, error)

// Definitions calls f.
func (f ReaderFunc) Definitions() ([]Definition, error) { return f() }
