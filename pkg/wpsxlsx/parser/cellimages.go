package parser

import (
	"archive/zip"
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"
)

const (
	cellImagesPath     = "xl/cellimages.xml"
	cellImagesRelsPath = "xl/_rels/cellimages.xml.rels"
)

// dispImgPattern matches DISPIMG("ID_...",n), with or without the _xlfn. prefix.
var dispImgPattern = regexp.MustCompile(`DISPIMG\(\s*"([^"]+)"`)

// CellImage is one placeholder of xl/cellimages.xml.
type CellImage struct {
	ID    int
	Name  string
	Embed string
	// Media is the resolved package path of the picture, if its relationship exists.
	Media string
	CX    int64
	CY    int64
}

// ImageRef is a cell whose formula displays a cell image.
type ImageRef struct {
	Cell string
	Name string
}

// ParseCellImages reads the placeholders of xl/cellimages.xml in document
// order. A package without the part yields nil.
func ParseCellImages(r *zip.Reader) ([]CellImage, error) {
	data, err := readZipFile(r, cellImagesPath)
	if err != nil || data == nil {
		return nil, err
	}

	images := parseCellImagesXML(data)

	relsData, err := readZipFile(r, cellImagesRelsPath)
	if err != nil {
		return nil, err
	}
	targets := parseRelsTargets(relsData)
	for i := range images {
		if target, ok := targets[images[i].Embed]; ok {
			images[i].Media = resolveRelativePath(target, "xl")
		}
	}

	return images, nil
}

func parseCellImagesXML(data []byte) []CellImage {
	var images []CellImage
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		if se.Name.Local == "cellImage" {
			images = append(images, CellImage{})
			continue
		}
		if len(images) == 0 {
			continue
		}
		cur := &images[len(images)-1]

		switch se.Name.Local {
		case "cNvPr":
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "id":
					cur.ID, _ = strconv.Atoi(attr.Value)
				case "name":
					cur.Name = attr.Value
				}
			}
		case "blip":
			for _, attr := range se.Attr {
				if attr.Name.Local == "embed" {
					cur.Embed = attr.Value
				}
			}
		case "ext":
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "cx":
					cur.CX, _ = strconv.ParseInt(attr.Value, 10, 64)
				case "cy":
					cur.CY, _ = strconv.ParseInt(attr.Value, 10, 64)
				}
			}
		}
	}

	return images
}

// ExtractImageRefs scans a worksheet part for cells with DISPIMG formulas.
func ExtractImageRefs(r *zip.Reader, sheetPath string) ([]ImageRef, error) {
	data, err := readZipFile(r, sheetPath)
	if err != nil || data == nil {
		return nil, err
	}
	return parseImageRefs(data), nil
}

func parseImageRefs(data []byte) []ImageRef {
	var refs []ImageRef
	var cell string
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "c":
			cell = ""
			for _, attr := range se.Attr {
				if attr.Name.Local == "r" {
					cell = attr.Value
				}
			}
		case "f":
			formula, err := readElementText(decoder)
			if err != nil {
				return refs
			}
			if m := dispImgPattern.FindStringSubmatch(formula); m != nil && cell != "" {
				refs = append(refs, ImageRef{Cell: cell, Name: m[1]})
			}
		}
	}

	return refs
}
