package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Rows contains extracted rows with cell values and links.
	Rows []CellRow `json:"rows,omitempty"`
	// Images contains cells that display an embedded picture.
	Images []EmbeddedImage `json:"images,omitempty"`
}

// SheetRows is one named sheet of tabular input. Rows[0] is the header row.
type SheetRows struct {
	Name string          `json:"name" yaml:"name"`
	Rows [][]interface{} `json:"rows" yaml:"rows"`
}
