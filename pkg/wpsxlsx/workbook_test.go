package wpsxlsx

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/ooxml"
)

func TestAddWorksheet(t *testing.T) {
	wb := New(Options{})
	defer wb.Close()

	for _, name := range []string{"", "Second", ""} {
		if _, err := wb.AddWorksheet(name); err != nil {
			t.Fatalf("AddWorksheet(%q) failed: %v", name, err)
		}
	}
	if _, err := wb.AddWorksheet("second"); !errors.Is(err, ErrSheetExists) {
		t.Errorf("duplicate sheet name err = %v", err)
	}

	var names []string
	for _, ws := range wb.Worksheets() {
		names = append(names, ws.Name())
	}
	if strings.Join(names, ",") != "Sheet1,Second,Sheet3" {
		t.Errorf("sheet names = %v", names)
	}

	f := openBytes(t, saveBytes(t, wb))
	if got := strings.Join(f.GetSheetList(), ","); got != "Sheet1,Second,Sheet3" {
		t.Errorf("saved sheets = %s", got)
	}
}

func TestPrepareMetadata(t *testing.T) {
	tests := []struct {
		name   string
		build  func(t *testing.T, ws *Worksheet)
		expect ooxml.BuildPlan
	}{
		{
			name:   "empty",
			build:  func(t *testing.T, ws *Worksheet) {},
			expect: ooxml.BuildPlan{},
		},
		{
			name: "image",
			build: func(t *testing.T, ws *Worksheet) {
				if _, err := ws.EmbedImage(0, 0, "a.png", &EmbedOptions{ImageData: pngBytes(t, color.White)}); err != nil {
					t.Fatal(err)
				}
			},
			expect: ooxml.BuildPlan{HasEmbeddedImages: true, HasMetadata: true, HasCellImages: true},
		},
		{
			name: "dynamic array",
			build: func(t *testing.T, ws *Worksheet) {
				if err := ws.WriteDynamicArrayFormula(0, 0, 2, 0, "=SEQUENCE(3)", 0); err != nil {
					t.Fatal(err)
				}
			},
			expect: ooxml.BuildPlan{HasMetadata: true, HasCellImages: true, HasDynamicFunctions: true},
		},
		{
			name: "both",
			build: func(t *testing.T, ws *Worksheet) {
				if _, err := ws.EmbedImage(5, 5, "a.png", &EmbedOptions{ImageData: pngBytes(t, color.White)}); err != nil {
					t.Fatal(err)
				}
				if err := ws.WriteDynamicArrayFormula(0, 0, 0, 2, "SEQUENCE(1,3)", 0); err != nil {
					t.Fatal(err)
				}
			},
			expect: ooxml.BuildPlan{HasEmbeddedImages: true, HasMetadata: true, HasCellImages: true, HasDynamicFunctions: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := New(Options{})
			defer wb.Close()
			ws, err := wb.AddWorksheet("Sheet1")
			if err != nil {
				t.Fatal(err)
			}
			tt.build(t, ws)

			if got := wb.prepareMetadata(); got != tt.expect {
				t.Errorf("plan = %+v, expected %+v", got, tt.expect)
			}
		})
	}
}

func TestSaveWithoutImages(t *testing.T) {
	wb := New(Options{})
	defer wb.Close()
	ws, err := wb.AddWorksheet("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Write(0, 0, "plain", 0); err != nil {
		t.Fatal(err)
	}

	parts := packageParts(t, saveBytes(t, wb))
	for name := range parts {
		if strings.Contains(name, "cellimages") || strings.HasPrefix(name, "xl/media/") {
			t.Errorf("unexpected part %s", name)
		}
	}
	if strings.Contains(string(parts[ooxml.ContentTypesPart]), "cellimages") {
		t.Error("content types reference cellimages")
	}
	if strings.Contains(string(parts[ooxml.WorkbookRelsPart]), "cellimages") {
		t.Error("workbook rels reference cellimages")
	}
}

func TestSaveDynamicArrayOnly(t *testing.T) {
	wb := New(Options{})
	defer wb.Close()
	ws, err := wb.AddWorksheet("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.WriteDynamicArrayFormula(0, 0, 2, 0, "SEQUENCE(3)", 0); err != nil {
		t.Fatal(err)
	}

	parts := packageParts(t, saveBytes(t, wb))
	cellImages, ok := parts[ooxml.CellImagesPart]
	if !ok {
		t.Fatal("cellimages.xml missing for dynamic array workbook")
	}
	if strings.Contains(string(cellImages), "<etc:cellImage>") {
		t.Errorf("unexpected placeholders: %s", cellImages)
	}
	for name := range parts {
		if strings.HasPrefix(name, "xl/media/") {
			t.Errorf("unexpected media part %s", name)
		}
	}
}

func TestSaveAs(t *testing.T) {
	wb := New(Options{})
	defer wb.Close()
	ws, err := wb.AddWorksheet("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ws.EmbedImage(0, 0, "a.png", &EmbedOptions{ImageData: pngBytes(t, color.White)}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := packageParts(t, data)["xl/media/image1.png"]; !ok {
		t.Error("saved file has no media part")
	}

	var out strings.Builder
	n, err := wb.WriteTo(&out)
	if err != nil || n == 0 || n != int64(out.Len()) {
		t.Errorf("WriteTo = %d, %v; wrote %d bytes", n, err, out.Len())
	}
}
