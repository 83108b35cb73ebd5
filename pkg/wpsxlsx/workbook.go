package wpsxlsx

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/images"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/ooxml"
	"github.com/xuri/excelize/v2"
)

// defaultSheetName is the sheet excelize creates with every new file.
const defaultSheetName = "Sheet1"

// Workbook is an xlsx workbook that can hold cell-embedded images.
// It is not safe for concurrent use.
type Workbook struct {
	file   *excelize.File
	opts   Options
	logger *slog.Logger
	images *images.Registry
	sheets []*Worksheet

	urlStyle int
}

// New creates an empty workbook.
func New(opts Options) *Workbook {
	return &Workbook{
		file:   excelize.NewFile(),
		opts:   opts,
		logger: opts.logger(),
		images: images.NewRegistry(),
	}
}

// AddWorksheet appends a worksheet. An empty name becomes Sheet<N>.
func (wb *Workbook) AddWorksheet(name string) (*Worksheet, error) {
	if name == "" {
		name = "Sheet" + strconv.Itoa(len(wb.sheets)+1)
	}
	for _, ws := range wb.sheets {
		if strings.EqualFold(ws.name, name) {
			return nil, fmt.Errorf("add worksheet %q: %w", name, ErrSheetExists)
		}
	}

	if len(wb.sheets) == 0 {
		if name != defaultSheetName {
			if err := wb.file.SetSheetName(defaultSheetName, name); err != nil {
				return nil, fmt.Errorf("add worksheet %q: %w", name, err)
			}
		}
	} else if _, err := wb.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("add worksheet %q: %w", name, err)
	}

	ws := &Worksheet{wb: wb, name: name}
	wb.sheets = append(wb.sheets, ws)
	return ws, nil
}

// Worksheets returns the worksheets in creation order.
func (wb *Workbook) Worksheets() []*Worksheet {
	return append([]*Worksheet(nil), wb.sheets...)
}

// AddStyle registers a cell style and returns its id.
func (wb *Workbook) AddStyle(style *excelize.Style) (int, error) {
	return wb.file.NewStyle(style)
}

// Images returns the registered images in placeholder order.
func (wb *Workbook) Images() []images.Record {
	return wb.images.Records()
}

// defaultURLStyle returns the blue underlined style used for hyperlinks.
func (wb *Workbook) defaultURLStyle() (int, error) {
	if wb.urlStyle != 0 {
		return wb.urlStyle, nil
	}
	id, err := wb.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0000FF", Underline: "single"},
	})
	if err != nil {
		return 0, err
	}
	wb.urlStyle = id
	return id, nil
}

// prepareMetadata computes the build plan for one save. Cell images are
// emitted whenever metadata is needed, including sheets that only use
// dynamic arrays.
func (wb *Workbook) prepareMetadata() ooxml.BuildPlan {
	var plan ooxml.BuildPlan
	plan.HasEmbeddedImages = wb.images.HasImages()
	plan.HasMetadata = plan.HasEmbeddedImages
	plan.HasCellImages = plan.HasEmbeddedImages

	for _, ws := range wb.sheets {
		if ws.hasDynamicArrays {
			plan.HasMetadata = true
			plan.HasCellImages = true
			plan.HasDynamicFunctions = true
		}
	}
	return plan
}

// WriteTo writes the complete package to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	plan := wb.prepareMetadata()

	base, err := wb.file.WriteToBuffer()
	if err != nil {
		return 0, fmt.Errorf("render workbook: %w", err)
	}

	cw := &countingWriter{w: w}
	if err := ooxml.NewPackager(plan, wb.images.Records()).Assemble(cw, base.Bytes()); err != nil {
		return cw.n, fmt.Errorf("assemble package: %w", err)
	}
	return cw.n, nil
}

// WriteToBuffer returns the complete package in a new buffer.
func (wb *Workbook) WriteToBuffer() (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if _, err := wb.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// SaveAs writes the package to path.
func (wb *Workbook) SaveAs(path string) error {
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Close releases resources held by the underlying file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
