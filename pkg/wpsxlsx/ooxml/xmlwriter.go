// Package ooxml writes the WPS cell-images extension parts and splices them
// into an xlsx package produced by excelize.
package ooxml

import (
	"encoding/xml"
	"io"
)

// Attr is a single XML attribute. Names may carry a namespace prefix (r:embed).
type Attr struct {
	Name  string
	Value string
}

// XMLWriter emits prefixed OOXML elements in a fixed attribute order.
// The first error is sticky and returned by Close.
type XMLWriter struct {
	enc *xml.Encoder
	err error
}

// NewXMLWriter returns an XMLWriter writing to w.
func NewXMLWriter(w io.Writer) *XMLWriter {
	return &XMLWriter{enc: xml.NewEncoder(w)}
}

// Declaration writes the standalone XML declaration followed by a newline.
func (x *XMLWriter) Declaration() {
	x.token(xml.ProcInst{
		Target: "xml",
		Inst:   []byte(`version="1.0" encoding="UTF-8" standalone="yes"`),
	})
	x.token(xml.CharData("\n"))
}

// StartTag opens an element.
func (x *XMLWriter) StartTag(name string, attrs ...Attr) {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	x.token(start)
}

// EndTag closes the element opened by the matching StartTag.
func (x *XMLWriter) EndTag(name string) {
	x.token(xml.EndElement{Name: xml.Name{Local: name}})
}

// EmptyTag writes an element with no content.
func (x *XMLWriter) EmptyTag(name string, attrs ...Attr) {
	x.StartTag(name, attrs...)
	x.EndTag(name)
}

// Close flushes buffered output and reports the first error encountered.
func (x *XMLWriter) Close() error {
	if x.err != nil {
		return x.err
	}
	return x.enc.Flush()
}

func (x *XMLWriter) token(t xml.Token) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(t)
}
