package wpsxlsx

import (
	"fmt"
	"math"
	"sort"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"github.com/xuri/excelize/v2"
)

// GenerateExcelBinary writes sheets into a new workbook and returns the xlsx
// bytes. Row 0 of each sheet is written bold. ImageCell values below the
// header are embedded; a cell whose image cannot be embedded is left blank and
// the rest of the sheet is still written. URL conversion is off unless
// opts.StringsToURLs says otherwise.
func GenerateExcelBinary(sheets []models.SheetRows, opts Options) ([]byte, error) {
	if opts.StringsToURLs == nil {
		off := false
		opts.StringsToURLs = &off
	}
	wb := New(opts)
	defer wb.Close()

	bold, err := wb.AddStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for _, sheet := range sheets {
		ws, err := wb.AddWorksheet(sheet.Name)
		if err != nil {
			return nil, err
		}
		for r, row := range sheet.Rows {
			for c, value := range row {
				if err := ws.writeBatchCell(r, c, value, bold); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateExcelBinaryFromMap is GenerateExcelBinary for an unordered mapping
// of sheet name to rows. Sheets are written in sorted name order.
func GenerateExcelBinaryFromMap(data map[string][][]interface{}, opts Options) ([]byte, error) {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	sheets := make([]models.SheetRows, 0, len(names))
	for _, name := range names {
		sheets = append(sheets, models.SheetRows{Name: name, Rows: data[name]})
	}
	return GenerateExcelBinary(sheets, opts)
}

// writeBatchCell writes one input value. Header cells get the bold style and
// are always written as plain values.
func (ws *Worksheet) writeBatchCell(row, col int, value interface{}, bold int) error {
	if isNull(value) {
		value = ""
	}
	if p, ok := value.(*models.ImageCell); ok {
		value = *p
	}

	if row == 0 {
		return ws.Write(row, col, value, bold)
	}
	if img, ok := value.(models.ImageCell); ok {
		ws.embedOrSkip(row, col, img)
		return nil
	}
	return ws.Write(row, col, value, 0)
}

// embedOrSkip embeds img at (row, col). On failure the cell is left empty.
func (ws *Worksheet) embedOrSkip(row, col int, img models.ImageCell) {
	status, err := ws.EmbedImage(row, col, img.Name, &EmbedOptions{ImageData: img.Content})
	if err != nil {
		ws.wb.logger.Warn("Failed to embed image, leaving cell empty",
			"sheet", ws.name, "row", row, "col", col, "image", img.Name, "err", err)
		return
	}
	if status != EmbedOK {
		ws.wb.logger.Warn("Image not embedded", "sheet", ws.name, "row", row, "col", col, "status", status)
	}
}

// isNull reports missing values: nil and NaN.
func isNull(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case *models.ImageCell:
		return x == nil
	}
	return false
}
