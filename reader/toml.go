package reader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sghaida/ioc/beans"
)

// tomlFile is the TOML layout:
//
//	[[bean]]
//	id = "mailService"
//	class = "mail.MailService"
//
//	  [[bean.property]]
//	  name = "port"
//	  value = 3000
//
//	  [[bean.property]]
//	  name = "owner"
//	  ref = "userService"
type tomlFile struct {
	Bean []tomlBean `toml:"bean"`
}

type tomlBean struct {
	ID       string         `toml:"id"`
	Class    string         `toml:"class"`
	Property []tomlProperty `toml:"property,omitempty"`
}

type tomlProperty struct {
	Name string `toml:"name"`
	// Value accepts any TOML scalar; it is carried on as its literal text.
	Value any     `toml:"value"`
	Ref   *string `toml:"ref,omitempty"`
}

func parseTOML(r io.Reader) ([]beans.Definition, error) {
	var doc tomlFile
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	defs := make([]beans.Definition, 0, len(doc.Bean))
	for _, b := range doc.Bean {
		def := beans.Definition{ID: b.ID, Type: b.Class}
		for _, p := range b.Property {
			var value *string
			if p.Value != nil {
				text, err := tomlScalar(p.Value)
				if err != nil {
					return nil, fmt.Errorf("bean %s: property %s: %w", strconv.Quote(b.ID), strconv.Quote(p.Name), err)
				}
				value = &text
			}
			prop, err := property(p.Name, value, p.Ref)
			if err != nil {
				return nil, fmt.Errorf("bean %s: %w", strconv.Quote(b.ID), err)
			}
			def.Properties = append(def.Properties, prop)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func tomlScalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("value must be a string, number or boolean, got %T", v)
	}
}

func encodeTOML(w io.Writer, defs []beans.Definition) error {
	doc := tomlFile{Bean: make([]tomlBean, 0, len(defs))}
	for _, d := range defs {
		b := tomlBean{ID: d.ID, Class: d.Type}
		for _, p := range d.Properties {
			tp := tomlProperty{Name: p.Name}
			if p.Value.IsRef() {
				ref := p.Value.Text()
				tp.Ref = &ref
			} else {
				tp.Value = p.Value.Text()
			}
			b.Property = append(b.Property, tp)
		}
		doc.Bean = append(doc.Bean, b)
	}
	return toml.NewEncoder(w).Encode(doc)
}
