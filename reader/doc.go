// Package reader loads bean definitions from declarative files.
//
// FileReader implements beans.DefinitionReader. Each path is parsed according
// to its extension:
//
//   - .xml: <beans><bean id class><property name value|ref/></bean></beans>
//   - .yaml, .yml: a beans list with a properties mapping
//   - .toml: [[bean]] tables with [[bean.property]] entries
//   - .hcl: bean "id" blocks with property "name" blocks
//
// Every format carries a property either as a literal value or as a ref to
// another bean id; setting both, or neither, is an error.
//
// Encode writes definitions back in any of the formats, which is what
// cmd/beanctl uses to normalize and convert definition files.
package reader
