package wpsxlsx

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrOutOfRange indicates a cell coordinate outside the worksheet limits.
var ErrOutOfRange = errors.New("cell out of range")

// ErrSheetExists indicates a worksheet name already used in the workbook.
var ErrSheetExists = errors.New("worksheet already exists")

// ErrUnsupportedValue indicates a value Write cannot store in a cell.
var ErrUnsupportedValue = errors.New("unsupported cell value")

// CellError represents an error while writing a cell.
type CellError struct {
	Sheet string
	Row   int
	Col   int
	Op    string // "write", "embed", "url", "formula"
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s error in sheet %q at (%d, %d): %v", e.Op, e.Sheet, e.Row, e.Col, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// NewCellError creates a new CellError.
func NewCellError(sheet, op string, row, col int, err error) *CellError {
	return &CellError{
		Sheet: sheet,
		Row:   row,
		Col:   col,
		Op:    op,
		Err:   err,
	}
}
