// Package dataset loads tabular input for batch conversion.
//
// JSON and YAML documents hold any number of sheets:
//
//	{"sheets": [{"name": "Items", "rows": [["name", "photo"], ["a", {"image": "a.png"}]]}]}
//
// A cell object is an image: {"image": path} reads the file, and
// {"name": label, "data": base64} carries the bytes inline. A CSV file is one
// sheet named after the file.
package dataset

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
)

var (
	// ErrUnsupportedInput is returned for unknown formats, encodings and cell objects.
	ErrUnsupportedInput = errors.New("unsupported input")
)

// Options control LoadFile.
type Options struct {
	// Encoding of CSV input. Defaults to utf-8.
	Encoding string
	// ImagePrefix marks CSV cells holding an image path. Defaults to "@image:".
	ImagePrefix string
}

const defaultImagePrefix = "@image:"

type document struct {
	Sheets []sheet `json:"sheets" yaml:"sheets"`
}

type sheet struct {
	Name string          `json:"name" yaml:"name"`
	Rows [][]interface{} `json:"rows" yaml:"rows"`
}

// LoadFile loads path by extension: .json, .yaml, .yml or .csv. Image paths
// are resolved against the directory of path.
func LoadFile(path string, opts Options) ([]models.SheetRows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	baseDir := filepath.Dir(path)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(f, baseDir)
	case ".yaml", ".yml":
		return LoadYAML(f, baseDir)
	case ".csv":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		prefix := opts.ImagePrefix
		if prefix == "" {
			prefix = defaultImagePrefix
		}
		rows, err := LoadCSV(name, f, opts.Encoding, prefix, baseDir)
		if err != nil {
			return nil, err
		}
		return []models.SheetRows{rows}, nil
	default:
		return nil, fmt.Errorf("%w: file extension %q", ErrUnsupportedInput, ext)
	}
}

// convert turns a decoded document into sheet rows, mapping cell objects to
// images.
func (d *document) convert(baseDir string) ([]models.SheetRows, error) {
	out := make([]models.SheetRows, 0, len(d.Sheets))
	for i, s := range d.Sheets {
		rows := make([][]interface{}, len(s.Rows))
		for r, row := range s.Rows {
			rows[r] = make([]interface{}, len(row))
			for c, v := range row {
				value, err := cellValue(v, baseDir)
				if err != nil {
					return nil, fmt.Errorf("sheet %d row %d col %d: %w", i+1, r, c, err)
				}
				rows[r][c] = value
			}
		}
		out = append(out, models.SheetRows{Name: s.Name, Rows: rows})
	}
	return out, nil
}

func cellValue(v interface{}, baseDir string) (interface{}, error) {
	switch x := v.(type) {
	case map[string]interface{}:
		return imageCell(x, baseDir)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return imageCell(m, baseDir)
	case []interface{}:
		return nil, fmt.Errorf("%w: nested list", ErrUnsupportedInput)
	default:
		return normalizeScalar(v), nil
	}
}

func imageCell(m map[string]interface{}, baseDir string) (*models.ImageCell, error) {
	if p, ok := m["image"].(string); ok && p != "" {
		return &models.ImageCell{Name: resolvePath(baseDir, p)}, nil
	}

	data, ok := m["data"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: cell object without image or data", ErrUnsupportedInput)
	}
	content, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}
	name, _ := m["name"].(string)
	if name == "" {
		name = "image"
	}
	return &models.ImageCell{Name: name, Content: content}, nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
