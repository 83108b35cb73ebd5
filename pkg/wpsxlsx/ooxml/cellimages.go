package ooxml

import (
	"io"
	"strconv"
)

// WPS Office extension identifiers.
const (
	WPSAppDocument    = "application/vnd.wps-officedocument."
	WPSDocumentSchema = "http://www.wps.cn/officeDocument/2020"
)

// XML namespaces used in xl/cellimages.xml
const (
	nsXDR = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsETC = "http://www.wps.cn/officeDocument/2017/etCustomData"
)

// Placeholder extent in EMU. WPS sizes the picture from the cell, not from these.
const (
	placeholderCX = "5734050"
	placeholderCY = "8105775"
)

// CellImageName returns the placeholder name a DISPIMG formula refers to.
func CellImageName(digest string) string {
	return "ID_" + digest
}

// WriteCellImages writes xl/cellimages.xml with one placeholder per digest.
// Placeholder i (1-based) is named ID_<digest>, has id i and embeds rId<i>, so
// the relationship part must be generated from the same ordering.
func WriteCellImages(w io.Writer, digests []string) error {
	x := NewXMLWriter(w)
	x.Declaration()

	x.StartTag("etc:cellImages",
		Attr{"xmlns:xdr", nsXDR},
		Attr{"xmlns:r", nsR},
		Attr{"xmlns:a", nsA},
		Attr{"xmlns:etc", nsETC},
	)
	for i, digest := range digests {
		writeCellImage(x, i+1, digest)
	}
	x.EndTag("etc:cellImages")

	return x.Close()
}

func writeCellImage(x *XMLWriter, index int, digest string) {
	id := strconv.Itoa(index)

	x.StartTag("etc:cellImage")
	x.StartTag("xdr:pic")

	x.StartTag("xdr:nvPicPr")
	x.EmptyTag("xdr:cNvPr", Attr{"id", id}, Attr{"name", CellImageName(digest)})
	x.EmptyTag("xdr:cNvPicPr")
	x.EndTag("xdr:nvPicPr")

	x.StartTag("xdr:blipFill")
	x.EmptyTag("a:blip", Attr{"r:embed", "rId" + id})
	x.StartTag("a:stretch")
	x.EmptyTag("a:fillRect")
	x.EndTag("a:stretch")
	x.EndTag("xdr:blipFill")

	x.StartTag("xdr:spPr")
	x.StartTag("a:xfrm")
	x.EmptyTag("a:off", Attr{"x", "0"}, Attr{"y", "0"})
	x.EmptyTag("a:ext", Attr{"cx", placeholderCX}, Attr{"cy", placeholderCY})
	x.EndTag("a:xfrm")
	x.StartTag("a:prstGeom", Attr{"prst", "rect"})
	x.EmptyTag("a:avLst")
	x.EndTag("a:prstGeom")
	x.EndTag("xdr:spPr")

	x.EndTag("xdr:pic")
	x.EndTag("etc:cellImage")
}
