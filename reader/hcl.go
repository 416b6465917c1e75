package reader

import (
	"io"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/sghaida/ioc/beans"
)

// hclFile is the HCL layout:
//
//	bean "mailService" {
//	  class = "mail.MailService"
//	  property "port" { value = 3000 }
//	}
//
//	bean "userService" {
//	  class = "mail.UserService"
//	  property "mailService" { ref = "mailService" }
//	}
type hclFile struct {
	Beans []hclBean `hcl:"bean,block"`
}

type hclBean struct {
	ID         string        `hcl:"id,label"`
	Class      string        `hcl:"class"`
	Properties []hclProperty `hcl:"property,block"`
}

type hclProperty struct {
	Name  string  `hcl:"name,label"`
	Value *string `hcl:"value,optional"`
	Ref   *string `hcl:"ref,optional"`
}

func parseHCL(r io.Reader, name string) ([]beans.Definition, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, diags
	}

	var doc hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, diags
	}

	defs := make([]beans.Definition, 0, len(doc.Beans))
	for _, b := range doc.Beans {
		def := beans.Definition{ID: b.ID, Type: b.Class}
		for _, p := range b.Properties {
			prop, err := property(p.Name, p.Value, p.Ref)
			if err != nil {
				return nil, err
			}
			def.Properties = append(def.Properties, prop)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func encodeHCL(w io.Writer, defs []beans.Definition) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, d := range defs {
		if i > 0 {
			body.AppendNewline()
		}
		bb := body.AppendNewBlock("bean", []string{d.ID}).Body()
		bb.SetAttributeValue("class", cty.StringVal(d.Type))
		for _, p := range d.Properties {
			pb := bb.AppendNewBlock("property", []string{p.Name}).Body()
			if p.Value.IsRef() {
				pb.SetAttributeValue("ref", cty.StringVal(p.Value.Text()))
			} else {
				pb.SetAttributeValue("value", cty.StringVal(p.Value.Text()))
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}
