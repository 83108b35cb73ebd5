// Package models defines data structures for cell-image workbooks.
package models

// CellRow represents a single row of cells with optional hyperlinks.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string) to cell value.
	C map[string]interface{} `json:"c"`
	// Links maps column index to hyperlink URL (optional).
	Links map[string]string `json:"links,omitempty"`
}

// CellFormulaValue is the stored content of a cell holding an embedded image.
type CellFormulaValue struct {
	// Formula is the stored formula, e.g. _xlfn.DISPIMG("ID_<digest>",1).
	Formula string `json:"formula"`
	// Value is the display form, e.g. =DISPIMG("ID_<digest>",1).
	Value string `json:"value"`
	// Style is the excelize style id applied to the cell (0 for none).
	Style int `json:"style,omitempty"`
}
