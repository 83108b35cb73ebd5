package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadCSV reads one sheet. Cells starting with imagePrefix are replaced by the
// image at the path that follows it.
func LoadCSV(name string, r io.Reader, enc, imagePrefix, baseDir string) (models.SheetRows, error) {
	decoder, err := lookupEncoding(enc)
	if err != nil {
		return models.SheetRows{}, err
	}

	cr := csv.NewReader(transform.NewReader(r, decoder.NewDecoder()))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return models.SheetRows{}, fmt.Errorf("read csv %s: %w", name, err)
	}

	rows := make([][]interface{}, len(records))
	for i, record := range records {
		rows[i] = make([]interface{}, len(record))
		for j, field := range record {
			if imagePrefix != "" && strings.HasPrefix(field, imagePrefix) {
				p := strings.TrimSpace(strings.TrimPrefix(field, imagePrefix))
				rows[i][j] = &models.ImageCell{Name: resolvePath(baseDir, p)}
				continue
			}
			rows[i][j] = field
		}
	}
	return models.SheetRows{Name: name, Rows: rows}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "gbk", "cp936":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: encoding %q", ErrUnsupportedInput, name)
	}
}
