// Command beanctl checks and converts bean definition files.
//
// It reads one or more definition files (xml, yaml, toml or hcl, chosen by
// extension), concatenates them in argument order, and validates the result
// as one graph: every bean needs an id and a type, ids are unique, and every
// ref names a defined bean. Valid definitions are printed in the format
// selected with -format, which makes beanctl a converter between formats.
//
//	beanctl -format toml context.xml > context.toml
//	beanctl -check context.yaml extra.hcl
//
// With no file arguments the list comes from IOC_DEFINITIONS (';' separated).
// IOC_LOG_LEVEL and IOC_LOG_FORMAT control diagnostics on stderr; all three
// may also be set in the file named by -env.
//
// Exit codes are 0 when the definitions are valid, 1 when they are not and 2
// on usage errors.
package main
