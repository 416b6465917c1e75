package reader

import (
	"fmt"
	"io"

	"github.com/sghaida/ioc/beans"
)

// Encode writes defs in format. The output parses back to the same
// definitions with Parse.
func Encode(w io.Writer, format Format, defs []beans.Definition) error {
	switch format {
	case FormatXML:
		return encodeXML(w, defs)
	case FormatYAML:
		return encodeYAML(w, defs)
	case FormatTOML:
		return encodeTOML(w, defs)
	case FormatHCL:
		return encodeHCL(w, defs)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
}
