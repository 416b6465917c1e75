package reader

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sghaida/ioc/beans"
)

// yamlFile is the YAML layout. Scalars are literals; a mapping with a single
// ref or value key is spelled out explicitly:
//
//	beans:
//	  - id: mailService
//	    class: mail.MailService
//	    properties:
//	      protocol: POP3
//	      port: 3000
//	  - id: userService
//	    class: mail.UserService
//	    properties:
//	      mailService: {ref: mailService}
type yamlFile struct {
	Beans []yamlBean `yaml:"beans"`
}

type yamlBean struct {
	ID    string `yaml:"id"`
	Class string `yaml:"class"`
	// Properties stays a node so document order survives decoding.
	Properties yaml.Node `yaml:"properties"`
}

func parseYAML(r io.Reader) ([]beans.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	defs := make([]beans.Definition, 0, len(doc.Beans))
	for _, b := range doc.Beans {
		props, err := yamlProperties(&b.Properties)
		if err != nil {
			return nil, fmt.Errorf("bean %s: %w", strconv.Quote(b.ID), err)
		}
		defs = append(defs, beans.Definition{ID: b.ID, Type: b.Class, Properties: props})
	}
	return defs, nil
}

func yamlProperties(node *yaml.Node) ([]beans.Property, error) {
	switch {
	case node.Kind == 0:
		return nil, nil
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return nil, nil
	case node.Kind == yaml.MappingNode:
	default:
		return nil, fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}

	props := make([]beans.Property, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		value, ref, err := yamlValue(val)
		if err != nil {
			return nil, fmt.Errorf("line %d: property %s: %w", val.Line, strconv.Quote(key.Value), err)
		}
		prop, err := property(key.Value, value, ref)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", val.Line, err)
		}
		props = append(props, prop)
	}
	return props, nil
}

func yamlValue(node *yaml.Node) (value, ref *string, err error) {
	switch node.Kind {
	case yaml.ScalarNode:
		text := node.Value
		if node.Tag == "!!null" {
			text = ""
		}
		return &text, nil, nil
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return nil, nil, err
		}
		for k, v := range m {
			v := v
			switch k {
			case "value":
				value = &v
			case "ref":
				ref = &v
			default:
				return nil, nil, fmt.Errorf("unknown key %s", strconv.Quote(k))
			}
		}
		return value, ref, nil
	default:
		return nil, nil, errors.New("value must be a scalar or a {ref|value} mapping")
	}
}

func encodeYAML(w io.Writer, defs []beans.Definition) error {
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, d := range defs {
		bean := &yaml.Node{Kind: yaml.MappingNode}
		bean.Content = append(bean.Content, yamlStr("id"), yamlStr(d.ID), yamlStr("class"), yamlStr(d.Type))
		if len(d.Properties) > 0 {
			props := &yaml.Node{Kind: yaml.MappingNode}
			for _, p := range d.Properties {
				var v *yaml.Node
				if p.Value.IsRef() {
					v = &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle, Content: []*yaml.Node{yamlStr("ref"), yamlStr(p.Value.Text())}}
				} else {
					v = yamlStr(p.Value.Text())
				}
				props.Content = append(props.Content, yamlStr(p.Name), v)
			}
			bean.Content = append(bean.Content, yamlStr("properties"), props)
		}
		list.Content = append(list.Content, bean)
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{yamlStr("beans"), list}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// yamlStr is a string scalar; the encoder quotes it when it would otherwise
// read back as another type.
func yamlStr(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
