package parser

import (
	"strconv"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows. Cells named in
// imageCells hold picture formulas and are left to the image listing.
func ExtractCells(f *excelize.File, sheetName string, includeLinks bool, imageCells map[string]bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]interface{})
		linkMap := make(map[string]string)

		for colIdx, cellValue := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			colStr := strconv.Itoa(colIdx + 1) // 1-based column index as string

			if includeLinks {
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					linkMap[colStr] = target
				}
			}

			if cellValue == "" || imageCells[cellName] {
				continue
			}
			cellMap[colStr] = parseValue(cellValue)
		}

		if len(cellMap) > 0 || len(linkMap) > 0 {
			cellRow := models.CellRow{
				R: rowNum,
				C: cellMap,
			}
			if len(linkMap) > 0 {
				cellRow.Links = linkMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
