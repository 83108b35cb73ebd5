package models

// ImageCell is an input cell value that should be embedded as a picture.
type ImageCell struct {
	// Name is the image file name, used for logging and type hints.
	Name string `json:"name" yaml:"name"`
	// Content is the raw image bytes. If nil, Name is read from disk.
	Content []byte `json:"data" yaml:"data"`
}

// EmbeddedImage describes a cell-embedded picture found in a workbook.
type EmbeddedImage struct {
	// Cell is the cell reference, e.g. "B2".
	Cell string `json:"cell"`
	// R is the row index (1-based).
	R int `json:"r"`
	// C is the column index (1-based).
	C int `json:"c"`
	// Name is the placeholder name referenced by the DISPIMG formula.
	Name string `json:"name"`
	// Media is the package path of the image part (empty if unresolved).
	Media string `json:"media,omitempty"`
	// W is the placeholder width in pixels.
	W int `json:"w,omitempty"`
	// H is the placeholder height in pixels.
	H int `json:"h,omitempty"`
}
