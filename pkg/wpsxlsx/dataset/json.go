package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
)

// LoadJSON decodes a sheets document. Integral numbers become int64, others
// float64.
func LoadJSON(r io.Reader, baseDir string) ([]models.SheetRows, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc.convert(baseDir)
}

func normalizeScalar(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
