package dataset

import (
	"fmt"
	"io"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"gopkg.in/yaml.v2"
)

// LoadYAML decodes a sheets document written in YAML.
func LoadYAML(r io.Reader, baseDir string) ([]models.SheetRows, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return doc.convert(baseDir)
}
