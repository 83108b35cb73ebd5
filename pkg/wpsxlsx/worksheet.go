package wpsxlsx

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/images"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/ooxml"
	"github.com/xuri/excelize/v2"
)

// EmbedImage status codes. EmbedFailed is returned for out-of-range cells
// (with a nil error) and alongside every non-nil error.
const (
	EmbedOK     = 0
	EmbedFailed = -1
)

// Worksheet is a sheet of a Workbook. Row and column arguments are 0-based.
type Worksheet struct {
	wb               *Workbook
	name             string
	hasDynamicArrays bool

	// embedded holds the image formulas written by EmbedImage, keyed by cell.
	embedded map[string]models.CellFormulaValue
}

// Name returns the sheet name.
func (ws *Worksheet) Name() string {
	return ws.name
}

// DisplayImageFormula returns the formula and display text that make a
// compatible viewer render the placeholder named ID_<digest32>.
func DisplayImageFormula(digest32 string) (formula, display string) {
	value := fmt.Sprintf(`DISPIMG("%s",1)`, ooxml.CellImageName(digest32))
	return "_xlfn." + value, "=" + value
}

// EmbedImage stores the image from source inside the cell at (row, col).
//
// source is a file path, or a label when opts.ImageData or opts.ImageReader
// carries the content. The image is registered only once the cell is written.
// Out-of-range coordinates log a warning, leave the cell untouched and return
// EmbedFailed with a nil error. Image decoding errors are returned wrapped in
// a *CellError.
func (ws *Worksheet) EmbedImage(row, col int, source string, opts *EmbedOptions) (int, error) {
	if ws.checkDimensions(row, col) {
		ws.wb.logger.Warn(fmt.Sprintf("Cannot embed image at (%d, %d).", row, col), "sheet", ws.name)
		return EmbedFailed, nil
	}
	if opts == nil {
		opts = &EmbedOptions{}
	}

	rec, err := imageFromSource(source, opts)
	if err != nil {
		return EmbedFailed, NewCellError(ws.name, "embed", row, col, err)
	}

	cell := cellName(row, col)
	style := opts.CellStyle
	if opts.URL != "" && style == 0 {
		if style, err = ws.wb.defaultURLStyle(); err != nil {
			return EmbedFailed, NewCellError(ws.name, "url", row, col, err)
		}
	}

	formula, display := DisplayImageFormula(rec.Digest32())
	value := models.CellFormulaValue{Formula: formula, Value: display, Style: style}
	if err := ws.setFormulaValue(cell, value); err != nil {
		return EmbedFailed, NewCellError(ws.name, "embed", row, col, err)
	}
	if opts.URL != "" {
		if err := ws.writeURLOnly(cell, opts.URL, opts.Tip); err != nil {
			ws.clearFormulaValue(cell)
			return EmbedFailed, NewCellError(ws.name, "url", row, col, err)
		}
	}

	ws.wb.images.Add(rec)
	return EmbedOK, nil
}

func imageFromSource(source string, opts *EmbedOptions) (*images.Record, error) {
	if opts.ImageReader != nil {
		return images.FromReader(filepath.Base(source), opts.ImageReader)
	}
	if opts.ImageData != nil {
		return images.FromBytes(filepath.Base(source), opts.ImageData)
	}
	return images.FromFile(source)
}

// setFormulaValue replaces the cell content with the formula. The previous
// value is cleared first since SetCellFormula keeps the cached <v>. The
// display text is not cached in the cell.
func (ws *Worksheet) setFormulaValue(cell string, value models.CellFormulaValue) error {
	if err := ws.setStyle(cell, value.Style); err != nil {
		return err
	}
	if err := ws.wb.file.SetCellDefault(ws.name, cell, ""); err != nil {
		return err
	}
	if err := ws.wb.file.SetCellFormula(ws.name, cell, value.Formula); err != nil {
		return err
	}
	if ws.embedded == nil {
		ws.embedded = make(map[string]models.CellFormulaValue)
	}
	ws.embedded[cell] = value
	return nil
}

// clearFormulaValue removes an image formula written by setFormulaValue.
func (ws *Worksheet) clearFormulaValue(cell string) {
	if err := ws.wb.file.SetCellFormula(ws.name, cell, ""); err != nil {
		ws.wb.logger.Warn("Failed to clear image formula", "sheet", ws.name, "cell", cell, "err", err)
	}
	delete(ws.embedded, cell)
}

// EmbeddedValue returns the image formula stored at (row, col) by EmbedImage.
func (ws *Worksheet) EmbeddedValue(row, col int) (models.CellFormulaValue, bool) {
	if ws.checkDimensions(row, col) {
		return models.CellFormulaValue{}, false
	}
	v, ok := ws.embedded[cellName(row, col)]
	return v, ok
}

// writeURLOnly adds a hyperlink without touching the cell value.
func (ws *Worksheet) writeURLOnly(cell, url, tip string) error {
	var opts []excelize.HyperlinkOpts
	if tip != "" {
		opts = append(opts, excelize.HyperlinkOpts{Tooltip: &tip})
	}
	return ws.wb.file.SetCellHyperLink(ws.name, cell, url, "External", opts...)
}

// Write stores value in the cell, choosing the cell type from the Go type.
func (ws *Worksheet) Write(row, col int, value interface{}, style int) error {
	switch v := value.(type) {
	case nil:
		return ws.WriteBlank(row, col, style)
	case string:
		switch {
		case v == "":
			return ws.WriteBlank(row, col, style)
		case ws.wb.opts.ShouldConvertFormulas() && strings.HasPrefix(v, "=") && len(v) > 1:
			return ws.WriteFormula(row, col, v, style)
		case ws.wb.opts.ShouldConvertURLs() && isURL(v):
			return ws.WriteURL(row, col, v, "", style)
		default:
			return ws.WriteString(row, col, v, style)
		}
	case bool:
		return ws.WriteBool(row, col, v, style)
	case float64:
		return ws.WriteNumber(row, col, v, style)
	case float32:
		return ws.WriteNumber(row, col, float64(v), style)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ws.writeValue(row, col, "write", v, style)
	case time.Time:
		return ws.writeValue(row, col, "write", v, style)
	case models.ImageCell:
		return ws.WriteString(row, col, v.Name, style)
	case fmt.Stringer:
		return ws.WriteString(row, col, v.String(), style)
	default:
		return NewCellError(ws.name, "write", row, col, fmt.Errorf("%w: %T", ErrUnsupportedValue, value))
	}
}

// WriteString stores a literal string.
func (ws *Worksheet) WriteString(row, col int, value string, style int) error {
	return ws.writeValue(row, col, "write", value, style)
}

// WriteNumber stores a number. NaN and infinities are written as blanks.
func (ws *Worksheet) WriteNumber(row, col int, value float64, style int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ws.WriteBlank(row, col, style)
	}
	return ws.writeValue(row, col, "write", value, style)
}

// WriteBool stores a boolean.
func (ws *Worksheet) WriteBool(row, col int, value bool, style int) error {
	return ws.writeValue(row, col, "write", value, style)
}

// WriteBlank styles an empty cell. Without a style nothing is written.
func (ws *Worksheet) WriteBlank(row, col int, style int) error {
	if ws.checkDimensions(row, col) {
		return NewCellError(ws.name, "write", row, col, ErrOutOfRange)
	}
	if style == 0 {
		return nil
	}
	if err := ws.setStyle(cellName(row, col), style); err != nil {
		return NewCellError(ws.name, "write", row, col, err)
	}
	return nil
}

// WriteFormula stores a formula. A leading "=" is optional.
func (ws *Worksheet) WriteFormula(row, col int, formula string, style int) error {
	if ws.checkDimensions(row, col) {
		return NewCellError(ws.name, "formula", row, col, ErrOutOfRange)
	}
	cell := cellName(row, col)
	if err := ws.wb.file.SetCellFormula(ws.name, cell, strings.TrimPrefix(formula, "=")); err != nil {
		return NewCellError(ws.name, "formula", row, col, err)
	}
	delete(ws.embedded, cell)
	if err := ws.setStyle(cell, style); err != nil {
		return NewCellError(ws.name, "formula", row, col, err)
	}
	return nil
}

// WriteDynamicArrayFormula stores an array formula spilling over the given
// range and marks the sheet as using dynamic arrays.
func (ws *Worksheet) WriteDynamicArrayFormula(firstRow, firstCol, lastRow, lastCol int, formula string, style int) error {
	if ws.checkDimensions(firstRow, firstCol) || ws.checkDimensions(lastRow, lastCol) {
		return NewCellError(ws.name, "formula", firstRow, firstCol, ErrOutOfRange)
	}
	if lastRow < firstRow {
		firstRow, lastRow = lastRow, firstRow
	}
	if lastCol < firstCol {
		firstCol, lastCol = lastCol, firstCol
	}

	cell := cellName(firstRow, firstCol)
	ref := cell + ":" + cellName(lastRow, lastCol)
	formulaType := excelize.STCellFormulaTypeArray
	err := ws.wb.file.SetCellFormula(ws.name, cell, strings.TrimPrefix(formula, "="),
		excelize.FormulaOpts{Type: &formulaType, Ref: &ref})
	if err != nil {
		return NewCellError(ws.name, "formula", firstRow, firstCol, err)
	}
	delete(ws.embedded, cell)
	if err := ws.setStyle(cell, style); err != nil {
		return NewCellError(ws.name, "formula", firstRow, firstCol, err)
	}

	ws.hasDynamicArrays = true
	return nil
}

// WriteURL stores a hyperlink with its display text. An empty display shows
// the URL itself. A zero style uses the workbook's hyperlink style.
func (ws *Worksheet) WriteURL(row, col int, url, display string, style int) error {
	if ws.checkDimensions(row, col) {
		return NewCellError(ws.name, "url", row, col, ErrOutOfRange)
	}
	if display == "" {
		display = url
	}
	if style == 0 {
		var err error
		if style, err = ws.wb.defaultURLStyle(); err != nil {
			return NewCellError(ws.name, "url", row, col, err)
		}
	}

	cell := cellName(row, col)
	if err := ws.writeURLOnly(cell, url, ""); err != nil {
		return NewCellError(ws.name, "url", row, col, err)
	}
	return ws.writeValue(row, col, "url", display, style)
}

func (ws *Worksheet) writeValue(row, col int, op string, value interface{}, style int) error {
	if ws.checkDimensions(row, col) {
		return NewCellError(ws.name, op, row, col, ErrOutOfRange)
	}
	cell := cellName(row, col)
	if err := ws.wb.file.SetCellValue(ws.name, cell, value); err != nil {
		return NewCellError(ws.name, op, row, col, err)
	}
	delete(ws.embedded, cell)
	if err := ws.setStyle(cell, style); err != nil {
		return NewCellError(ws.name, op, row, col, err)
	}
	return nil
}

func (ws *Worksheet) setStyle(cell string, style int) error {
	if style == 0 {
		return nil
	}
	return ws.wb.file.SetCellStyle(ws.name, cell, cell, style)
}

// checkDimensions reports whether (row, col) is outside the sheet limits.
func (ws *Worksheet) checkDimensions(row, col int) bool {
	return row < 0 || col < 0 || row >= excelize.TotalRows || col >= excelize.MaxColumns
}

// cellName converts 0-based coordinates to an A1 reference. Callers check
// dimensions first, so the conversion cannot fail.
func cellName(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row+1)
	return name
}

func isURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ftp://", "ftps://", "mailto:"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
