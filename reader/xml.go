package reader

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/sghaida/ioc/beans"
)

// xmlBeans is the classic context document:
//
//	<beans>
//	  <bean id="mailService" class="mail.MailService">
//	    <property name="port" value="3000"/>
//	  </bean>
//	  <bean id="userService" class="mail.UserService">
//	    <property name="mailService" ref="mailService"/>
//	  </bean>
//	</beans>
type xmlBeans struct {
	XMLName xml.Name  `xml:"beans"`
	Beans   []xmlBean `xml:"bean"`
}

type xmlBean struct {
	ID         string        `xml:"id,attr"`
	Class      string        `xml:"class,attr"`
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string  `xml:"name,attr"`
	Value *string `xml:"value,attr,omitempty"`
	Ref   *string `xml:"ref,attr,omitempty"`
}

func parseXML(r io.Reader) ([]beans.Definition, error) {
	var doc xmlBeans
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
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

func encodeXML(w io.Writer, defs []beans.Definition) error {
	doc := xmlBeans{Beans: make([]xmlBean, 0, len(defs))}
	for _, d := range defs {
		b := xmlBean{ID: d.ID, Class: d.Type}
		for _, p := range d.Properties {
			text := p.Value.Text()
			xp := xmlProperty{Name: p.Name}
			if p.Value.IsRef() {
				xp.Ref = &text
			} else {
				xp.Value = &text
			}
			b.Properties = append(b.Properties, xp)
		}
		doc.Beans = append(doc.Beans, b)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
