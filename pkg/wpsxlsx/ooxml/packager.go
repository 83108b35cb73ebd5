package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/images"
)

// BuildPlan holds the workbook-level feature flags computed before assembly.
type BuildPlan struct {
	// HasEmbeddedImages is set when the image registry is non-empty.
	HasEmbeddedImages bool
	// HasMetadata is set when images are embedded or any sheet uses dynamic arrays.
	HasMetadata bool
	// HasCellImages gates xl/cellimages.xml and its manifest entries.
	HasCellImages bool
	// HasDynamicFunctions is set when any sheet uses dynamic arrays.
	HasDynamicFunctions bool
}

// MediaTarget returns the relationship target of the index-th (1-based) image,
// relative to xl/.
func MediaTarget(index int, imageType string) string {
	return fmt.Sprintf("media/image%d.%s", index, strings.ToLower(imageType))
}

// Packager splices the cell-images extension into a base xlsx package.
type Packager struct {
	plan   BuildPlan
	images []images.Record
}

// NewPackager returns a Packager for one save. records must be in registry order.
func NewPackager(plan BuildPlan, records []images.Record) *Packager {
	return &Packager{plan: plan, images: records}
}

// Assemble copies base to w, patching the two manifests and appending the
// extension parts when the plan asks for them.
func (p *Packager) Assemble(w io.Writer, base []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(base), int64(len(base)))
	if err != nil {
		return fmt.Errorf("open base package: %w", err)
	}

	zw := zip.NewWriter(w)
	for _, f := range zr.File {
		switch f.Name {
		case ContentTypesPart:
			err = p.patchPart(zw, f, p.contentTypes)
		case WorkbookRelsPart:
			err = p.patchPart(zw, f, p.workbookRels)
		default:
			err = zw.Copy(f)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := p.writeCellImages(zw); err != nil {
		return err
	}
	return zw.Close()
}

func (p *Packager) patchPart(zw *zip.Writer, f *zip.File, patch func([]byte) ([]byte, error)) error {
	data, err := readZipFile(f)
	if err != nil {
		return err
	}
	out, err := patch(data)
	if err != nil {
		return err
	}
	return writePart(zw, f.Name, out)
}

func (p *Packager) contentTypes(data []byte) ([]byte, error) {
	ct, err := ParseContentTypes(data)
	if err != nil {
		return nil, err
	}
	ct.AddImageTypes(p.imageTypes())
	if p.plan.HasCellImages {
		ct.AddCellImages()
	}
	return ct.Marshal()
}

func (p *Packager) workbookRels(data []byte) ([]byte, error) {
	rels, err := ParseRelationships(data)
	if err != nil {
		return nil, err
	}
	if p.plan.HasCellImages {
		rels.AddCellImagesRelationship("/cellImage", "cellimages.xml")
	}
	return rels.Marshal()
}

// writeCellImages emits xl/cellimages.xml, its relationships and the media
// parts from one ordered pass over the images so rId<N> lines up with imageN.
func (p *Packager) writeCellImages(zw *zip.Writer) error {
	if !p.plan.HasCellImages {
		return nil
	}

	digests := make([]string, len(p.images))
	rels := NewRelationships()
	for i, rec := range p.images {
		digests[i] = rec.Digest32()
		rels.AddDocumentRelationship("/image", MediaTarget(i+1, rec.Type))
	}

	part, err := zw.Create(CellImagesPart)
	if err != nil {
		return fmt.Errorf("write %s: %w", CellImagesPart, err)
	}
	if err := WriteCellImages(part, digests); err != nil {
		return fmt.Errorf("write %s: %w", CellImagesPart, err)
	}

	data, err := rels.Marshal()
	if err != nil {
		return err
	}
	if err := writePart(zw, CellImagesRelsPart, data); err != nil {
		return fmt.Errorf("write %s: %w", CellImagesRelsPart, err)
	}

	for i, rec := range p.images {
		name := "xl/" + MediaTarget(i+1, rec.Type)
		if err := writePart(zw, name, rec.Data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func (p *Packager) imageTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, rec := range p.images {
		t := strings.ToLower(rec.Type)
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	part, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = part.Write(data)
	return err
}
