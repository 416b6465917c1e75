// cmd/beangen/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/sghaida/ioc/beans"
)

// beansImportPath is the package every generated file depends on.
const beansImportPath = "github.com/sghaida/ioc/beans"

// literalKinds maps predeclared parameter types to the typed setter
// registration method on beans.Type.
var literalKinds = map[string]string{
	"string":  "String",
	"bool":    "Bool",
	"rune":    "Char",
	"byte":    "Byte",
	"uint8":   "Byte",
	"int8":    "Int8",
	"int16":   "Int16",
	"int32":   "Int32",
	"int64":   "Int64",
	"int":     "Int",
	"float32": "Float32",
	"float64": "Float64",
}

// Setter is one discovered Set<X> method.
type Setter struct {
	// Property is the definition-side name, e.g. "port" for SetPort.
	Property string
	// Method is the Go method name.
	Method string
	// Kind names the literal registration method (Int32, String, ...).
	// Empty means the parameter is wired as a reference.
	Kind string
	// Param is the parameter type as written in the source.
	Param string
}

// BeanType is one type the generator emits a descriptor for.
type BeanType struct {
	Name     string
	TypeName string
	// Factory is the Go expression passed to beans.Describe.
	Factory string
	Setters []Setter
}

// templateData is the input passed to the Go template.
type templateData struct {
	Package     string
	BeansImport string
	Types       []BeanType
	Register    string
}

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("beangen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	dir := flags.String("dir", ".", "package directory to scan")
	typeList := flags.String("type", "", "comma-separated type names to describe")
	outPath := flags.String("out", "", "output .gen.go file path (default <dir>/beans.gen.go)")
	prefix := flags.String("prefix", "", "type name prefix used in definitions (default: package name)")
	register := flags.String("register", "RegisterBeans", "name of the generated catalog registration func")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	names := splitList(*typeList)
	if len(names) == 0 || !token.IsIdentifier(*register) {
		_, _ = fmt.Fprintln(stderr, "usage: beangen -type <T1,T2> [-dir <pkg dir>] [-out <file.gen.go>] [-prefix <name>] [-register <func>]")
		return 2
	}

	target := strings.TrimSpace(*outPath)
	if target == "" {
		target = filepath.Join(*dir, "beans.gen.go")
	}
	target = filepath.Clean(target)

	src, err := generate(*dir, names, *prefix, *register)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "beangen: %v\n", err)
		return 1
	}
	if err := writeFileAtomic(target, src, 0o644); err != nil {
		_, _ = fmt.Fprintf(stderr, "beangen: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// generate scans dir and renders the formatted descriptor source.
func generate(dir string, names []string, prefix, register string) ([]byte, error) {
	pkg, err := scanPackage(dir)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(prefix) == "" {
		prefix = pkg.name
	}

	data := templateData{Package: pkg.name, BeansImport: beansImportPath, Register: register}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("type %s requested twice", strconv.Quote(name))
		}
		seen[name] = struct{}{}

		bt, err := pkg.describe(name, prefix)
		if err != nil {
			return nil, err
		}
		data.Types = append(data.Types, bt)
	}

	var out bytes.Buffer
	if err := genTemplate.Execute(&out, data); err != nil {
		return nil, err
	}
	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return formatted, nil
}

// scannedPackage is everything generate needs from one package directory.
type scannedPackage struct {
	name    string
	types   map[string]bool
	funcs   map[string]*ast.FuncDecl
	methods map[string][]*ast.FuncDecl
}

// scanPackage parses the non-test, non-generated Go files of dir.
func scanPackage(dir string) (*scannedPackage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	pkg := &scannedPackage{
		types:   map[string]bool{},
		funcs:   map[string]*ast.FuncDecl{},
		methods: map[string][]*ast.FuncDecl{},
	}
	fset := token.NewFileSet()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, fileName), nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}
		if pkg.name == "" {
			pkg.name = file.Name.Name
		} else if pkg.name != file.Name.Name {
			return nil, fmt.Errorf("%s: package %s, want %s", fileName, file.Name.Name, pkg.name)
		}
		pkg.collect(file)
	}

	if pkg.name == "" {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}
	return pkg, nil
}

func (p *scannedPackage) collect(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				// Generic types cannot be instantiated by name.
				p.types[ts.Name.Name] = ts.TypeParams == nil
			}
		case *ast.FuncDecl:
			if d.Recv == nil {
				p.funcs[d.Name.Name] = d
				continue
			}
			if recv := receiverName(d); recv != "" {
				p.methods[recv] = append(p.methods[recv], d)
			}
		}
	}
}

// receiverName returns T for receivers T and *T. Generic receivers give "".
func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

// describe builds the BeanType for name. Setters keep declaration order.
func (p *scannedPackage) describe(name, prefix string) (BeanType, error) {
	concrete, ok := p.types[name]
	if !ok {
		return BeanType{}, fmt.Errorf("type %s not found in package %s", strconv.Quote(name), p.name)
	}
	if !concrete {
		return BeanType{}, fmt.Errorf("type %s is generic", strconv.Quote(name))
	}

	bt := BeanType{
		Name:     name,
		TypeName: prefix + "." + name,
		Factory:  p.factory(name),
	}

	for _, fn := range p.methods[name] {
		if setter, ok := setterFor(fn); ok {
			bt.Setters = append(bt.Setters, setter)
		}
	}
	return bt, nil
}

// factory picks New<Type> when it takes no arguments and returns *Type,
// optionally with an error; otherwise the zero value is used.
func (p *scannedPackage) factory(name string) string {
	ctor, ok := p.funcs["New"+name]
	if !ok || ctor.Type.TypeParams != nil || ctor.Type.Params.NumFields() != 0 || ctor.Type.Results == nil {
		return "beans.Zero[" + name + "]()"
	}

	results := ctor.Type.Results.List
	if !isPointerTo(results[0].Type, name) || len(results[0].Names) > 1 {
		return "beans.Zero[" + name + "]()"
	}
	switch ctor.Type.Results.NumFields() {
	case 1:
		return "beans.Constructor(" + ctor.Name.Name + ")"
	case 2:
		if ident, ok := results[len(results)-1].Type.(*ast.Ident); ok && ident.Name == "error" {
			return ctor.Name.Name
		}
	}
	return "beans.Zero[" + name + "]()"
}

func isPointerTo(expr ast.Expr, name string) bool {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return false
	}
	ident, ok := star.X.(*ast.Ident)
	return ok && ident.Name == name
}

// setterFor reports whether fn is an exported one-argument Set<X> method
// without results.
func setterFor(fn *ast.FuncDecl) (Setter, bool) {
	property, ok := beans.PropertyName(fn.Name.Name)
	if !ok || fn.Type.Params.NumFields() != 1 || fn.Type.Results.NumFields() != 0 {
		return Setter{}, false
	}
	param := fn.Type.Params.List[0].Type
	if _, variadic := param.(*ast.Ellipsis); variadic {
		return Setter{}, false
	}

	s := Setter{Property: property, Method: fn.Name.Name, Param: types.ExprString(param)}
	if ident, ok := param.(*ast.Ident); ok {
		s.Kind = literalKinds[ident.Name]
	}
	return s, true
}

// genTemplate renders the descriptor file. Output is passed through gofmt.
var genTemplate = template.Must(
	template.New("beangen").Parse(`// Code generated by beangen; DO NOT EDIT.

package {{.Package}}

import "{{.BeansImport}}"
{{range $bt := .Types}}
// {{$bt.Name}}Descriptor describes {{$bt.Name}} as {{printf "%q" $bt.TypeName}}.
func {{$bt.Name}}Descriptor() *beans.Descriptor {
	t := beans.Describe[{{$bt.Name}}]({{printf "%q" $bt.TypeName}}, {{$bt.Factory}})
{{- range $bt.Setters}}
{{- if .Kind}}
	t.{{.Kind}}({{printf "%q" .Property}}, (*{{$bt.Name}}).{{.Method}})
{{- else}}
	beans.WithRef(t, {{printf "%q" .Property}}, (*{{$bt.Name}}).{{.Method}})
{{- end}}
{{- end}}
	return t.Descriptor()
}
{{end}}
// {{.Register}} adds every descriptor in this file to c.
func {{.Register}}(c *beans.Catalog) error {
	return c.Register(
{{- range .Types}}
		{{.Name}}Descriptor(),
{{- end}}
	)
}
`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the target directory and
// renames it over targetPath, so readers never observe partial output.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := createTempFile(filepath.Dir(targetPath), filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}
