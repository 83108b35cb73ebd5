package ooxml

import (
	"encoding/xml"
	"fmt"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/images"
)

// Package part names touched by the extension.
const (
	ContentTypesPart      = "[Content_Types].xml"
	WorkbookRelsPart      = "xl/_rels/workbook.xml.rels"
	CellImagesPart        = "xl/cellimages.xml"
	CellImagesRelsPart    = "xl/_rels/cellimages.xml.rels"
	CellImagesContentType = WPSAppDocument + "cellimage+xml"
)

// xlsxTypes directly maps the Types root element of [Content_Types].xml.
type xlsxTypes struct {
	XMLName   xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []xlsxDefault  `xml:"Default"`
	Overrides []xlsxOverride `xml:"Override"`
}

// xlsxDefault maps a file extension to a content type.
type xlsxDefault struct {
	Extension   string `xml:",attr"`
	ContentType string `xml:",attr"`
}

// xlsxOverride maps a single part name to a content type.
type xlsxOverride struct {
	PartName    string `xml:",attr"`
	ContentType string `xml:",attr"`
}

// ContentTypes is an editable [Content_Types].xml manifest.
type ContentTypes struct {
	types xlsxTypes
}

// NewContentTypes returns an empty manifest.
func NewContentTypes() *ContentTypes {
	return &ContentTypes{}
}

// ParseContentTypes parses an existing [Content_Types].xml.
func ParseContentTypes(data []byte) (*ContentTypes, error) {
	var ct ContentTypes
	if err := xml.Unmarshal(data, &ct.types); err != nil {
		return nil, fmt.Errorf("parse content types: %w", err)
	}
	return &ct, nil
}

// AddDefault appends a Default entry unless the extension is already declared.
func (c *ContentTypes) AddDefault(extension, contentType string) {
	for _, d := range c.types.Defaults {
		if d.Extension == extension {
			return
		}
	}
	c.types.Defaults = append(c.types.Defaults, xlsxDefault{Extension: extension, ContentType: contentType})
}

// AddOverride appends an Override entry.
func (c *ContentTypes) AddOverride(partName, contentType string) {
	c.types.Overrides = append(c.types.Overrides, xlsxOverride{PartName: partName, ContentType: contentType})
}

// AddCellImages declares /xl/cellimages.xml. It is not idempotent.
func (c *ContentTypes) AddCellImages() {
	c.AddOverride("/"+CellImagesPart, CellImagesContentType)
}

// AddImageTypes declares a Default for each known image type.
func (c *ContentTypes) AddImageTypes(imageTypes []string) {
	for _, t := range imageTypes {
		if ct, ok := images.ContentType(t); ok {
			c.AddDefault(t, ct)
		}
	}
}

// Override returns the content type declared for partName.
func (c *ContentTypes) Override(partName string) (string, bool) {
	for _, o := range c.types.Overrides {
		if o.PartName == partName {
			return o.ContentType, true
		}
	}
	return "", false
}

// Marshal renders the manifest with an XML header.
func (c *ContentTypes) Marshal() ([]byte, error) {
	out, err := xml.Marshal(c.types)
	if err != nil {
		return nil, fmt.Errorf("marshal content types: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
