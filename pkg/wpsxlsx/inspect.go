package wpsxlsx

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/parser"
	"github.com/xuri/excelize/v2"
)

// Inspect reads cell values and cell-embedded images from an xlsx file.
func Inspect(path string, opts InspectOptions) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer r.Close()

	// Placeholders by name, for resolving DISPIMG references.
	cellImages, err := parser.ParseCellImages(&r.Reader)
	if err != nil {
		return nil, fmt.Errorf("read cell images: %w", err)
	}
	byName := make(map[string]parser.CellImage, len(cellImages))
	for _, ci := range cellImages {
		byName[ci.Name] = ci
	}

	sheetPaths, err := parser.SheetPaths(&r.Reader)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	sheets := make(map[string]models.SheetData)
	for _, sheetName := range f.GetSheetList() {
		var images []models.EmbeddedImage
		imageCells := make(map[string]bool)

		if sheetPath, ok := sheetPaths[sheetName]; ok {
			refs, err := parser.ExtractImageRefs(&r.Reader, sheetPath)
			if err != nil {
				return nil, NewCellError(sheetName, "inspect", 0, 0, err)
			}
			for _, ref := range refs {
				imageCells[ref.Cell] = true
				images = append(images, embeddedImage(ref, byName))
			}
		}

		rows, err := parser.ExtractCells(f, sheetName, opts.IncludeLinks, imageCells)
		if err != nil {
			return nil, NewCellError(sheetName, "inspect", 0, 0, err)
		}

		sheets[sheetName] = models.SheetData{
			Rows:   rows,
			Images: images,
		}
	}

	return &models.WorkbookData{
		BookName:   filepath.Base(path),
		Sheets:     sheets,
		CellImages: len(cellImages),
	}, nil
}

func embeddedImage(ref parser.ImageRef, byName map[string]parser.CellImage) models.EmbeddedImage {
	img := models.EmbeddedImage{Cell: ref.Cell, Name: ref.Name}
	if col, row, err := excelize.CellNameToCoordinates(ref.Cell); err == nil {
		img.R, img.C = row, col
	}
	if ci, ok := byName[ref.Name]; ok {
		img.Media = ci.Media
		img.W = parser.EMUToPixels(ci.CX)
		img.H = parser.EMUToPixels(ci.CY)
	}
	return img
}
