package reader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sghaida/ioc/beans"
)

// Format names a definition file syntax.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

var (
	// ErrUnsupportedFormat is returned for an unknown extension or format name.
	ErrUnsupportedFormat = errors.New("reader: unsupported format")

	errValueAndRef = errors.New("property sets both value and ref")
	errNoValue     = errors.New("property needs a value or a ref")
)

// FormatError reports a definition source that could not be read or parsed.
type FormatError struct {
	Path   string
	Format Format
	Err    error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	// Example: reader: context.xml (xml): property "port" needs a value or a ref
	return "reader: " + e.Path + " (" + string(e.Format) + "): " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error { return e.Err }

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// ParseFormat validates a format name such as "yaml".
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatXML, FormatYAML, FormatTOML, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Parse decodes definitions from r. name is used in error messages and by
// the HCL parser for diagnostics.
func Parse(format Format, r io.Reader, name string) ([]beans.Definition, error) {
	var (
		defs []beans.Definition
		err  error
	)
	switch format {
	case FormatXML:
		defs, err = parseXML(r)
	case FormatYAML:
		defs, err = parseYAML(r)
	case FormatTOML:
		defs, err = parseTOML(r)
	case FormatHCL:
		defs, err = parseHCL(r, name)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
	if err != nil {
		return nil, &FormatError{Path: name, Format: format, Err: err}
	}
	return defs, nil
}

// FileReader is a beans.DefinitionReader over one or more definition files.
// Definitions from all paths are concatenated in path order.
type FileReader struct {
	paths []string
	open  func(name string) (io.ReadCloser, error)
}

// New reads paths from the operating system's filesystem.
func New(paths ...string) *FileReader {
	return &FileReader{
		paths: paths,
		open:  func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// NewFS reads paths from fsys, e.g. an embed.FS.
func NewFS(fsys fs.FS, paths ...string) *FileReader {
	return &FileReader{
		paths: paths,
		open:  func(name string) (io.ReadCloser, error) { return fsys.Open(name) },
	}
}

// Paths returns the configured locations.
func (r *FileReader) Paths() []string { return append([]string(nil), r.paths...) }

// Definitions implements beans.DefinitionReader.
func (r *FileReader) Definitions() ([]beans.Definition, error) {
	var out []beans.Definition
	for _, path := range r.paths {
		defs, err := r.readFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, defs...)
	}
	return out, nil
}

func (r *FileReader) readFile(path string) ([]beans.Definition, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := r.open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Format: format, Err: err}
	}
	defer f.Close()
	return Parse(format, f, path)
}

// property builds a beans.Property from the optional value/ref pair every
// format shares.
func property(name string, value, ref *string) (beans.Property, error) {
	switch {
	case value != nil && ref != nil:
		return beans.Property{}, fmt.Errorf("property %s: %w", strconv.Quote(name), errValueAndRef)
	case ref != nil:
		return beans.Property{Name: name, Value: beans.Ref(*ref)}, nil
	case value != nil:
		return beans.Property{Name: name, Value: beans.Literal(*value)}, nil
	default:
		return beans.Property{}, fmt.Errorf("property %s: %w", strconv.Quote(name), errNoValue)
	}
}
