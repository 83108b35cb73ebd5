package ooxml

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/images"
)

func buildBasePackage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, body string }{
		{ContentTypesPart, baseContentTypes},
		{WorkbookRelsPart, baseWorkbookRels},
		{"xl/workbook.xml", `<workbook/>`},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func pngRecord(t *testing.T, c color.Color) images.Record {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	rec, err := images.FromBytes("px.png", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return *rec
}

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		body, err := readZipFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(body)
	}
	return parts
}

func TestAssembleWithImages(t *testing.T) {
	red := pngRecord(t, color.RGBA{R: 255, A: 255})
	blue := pngRecord(t, color.RGBA{B: 255, A: 255})
	plan := BuildPlan{HasEmbeddedImages: true, HasMetadata: true, HasCellImages: true}

	var out bytes.Buffer
	if err := NewPackager(plan, []images.Record{red, blue}).Assemble(&out, buildBasePackage(t)); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	parts := readParts(t, out.Bytes())

	if parts["xl/workbook.xml"] != `<workbook/>` {
		t.Error("untouched part was modified")
	}

	ct := parts[ContentTypesPart]
	if !strings.Contains(ct, `PartName="/xl/cellimages.xml" ContentType="application/vnd.wps-officedocument.cellimage+xml"`) {
		t.Errorf("content types missing cellimages override: %s", ct)
	}

	wbRels := parts[WorkbookRelsPart]
	if !strings.Contains(wbRels, `Id="rId4" Type="http://www.wps.cn/officeDocument/2020/cellImage" Target="cellimages.xml"`) {
		t.Errorf("workbook rels missing cellimages relationship: %s", wbRels)
	}

	refs := cellImageRefs(t, []byte(parts[CellImagesPart]))
	if len(refs) != 2 {
		t.Fatalf("got %d placeholders", len(refs))
	}
	if refs[0][1] != "ID_"+red.Digest32() || refs[1][1] != "ID_"+blue.Digest32() {
		t.Errorf("placeholders out of registry order: %v", refs)
	}

	rels, err := ParseRelationships([]byte(parts[CellImagesRelsPart]))
	if err != nil {
		t.Fatalf("parse cellimages rels: %v", err)
	}
	targets := rels.Targets()
	if len(targets) != 2 || targets["rId1"] != "media/image1.png" || targets["rId2"] != "media/image2.png" {
		t.Errorf("targets = %v", targets)
	}

	if parts["xl/media/image1.png"] != string(red.Data) || parts["xl/media/image2.png"] != string(blue.Data) {
		t.Error("media parts do not match registry order")
	}
}

func TestAssembleWithoutCellImages(t *testing.T) {
	var out bytes.Buffer
	if err := NewPackager(BuildPlan{}, nil).Assemble(&out, buildBasePackage(t)); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	parts := readParts(t, out.Bytes())

	for _, name := range []string{CellImagesPart, CellImagesRelsPart} {
		if _, ok := parts[name]; ok {
			t.Errorf("%s should not be written", name)
		}
	}
	for _, name := range []string{ContentTypesPart, WorkbookRelsPart} {
		if strings.Contains(parts[name], "cellimage") {
			t.Errorf("%s references cellimages: %s", name, parts[name])
		}
	}
}

func TestAssembleCellImagesWithoutImages(t *testing.T) {
	plan := BuildPlan{HasMetadata: true, HasCellImages: true, HasDynamicFunctions: true}
	var out bytes.Buffer
	if err := NewPackager(plan, nil).Assemble(&out, buildBasePackage(t)); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	parts := readParts(t, out.Bytes())

	if refs := cellImageRefs(t, []byte(parts[CellImagesPart])); len(refs) != 0 {
		t.Errorf("expected childless document, got %v", refs)
	}
	rels, err := ParseRelationships([]byte(parts[CellImagesRelsPart]))
	if err != nil {
		t.Fatal(err)
	}
	if rels.Len() != 0 {
		t.Errorf("expected no relationships, got %d", rels.Len())
	}
}

func TestAssembleRejectsNonZip(t *testing.T) {
	var out bytes.Buffer
	if err := NewPackager(BuildPlan{}, nil).Assemble(&out, []byte("not a zip")); err == nil {
		t.Error("expected error for invalid base package")
	}
}

func TestMediaTarget(t *testing.T) {
	if got := MediaTarget(3, "JPEG"); got != "media/image3.jpeg" {
		t.Errorf("MediaTarget = %q", got)
	}
}
