// Package images builds content-addressed image records for cell embedding.
package images

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DigestLen is the number of digest characters used as an image identity.
const DigestLen = 32

// ErrUnsupportedImage indicates the data is not an image format that can be embedded.
var ErrUnsupportedImage = errors.New("unsupported image data")

// contentTypes maps image types to the MIME types declared in the package.
var contentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"tiff": "image/tiff",
}

// Record is an immutable image payload keyed by its content digest.
type Record struct {
	// Name is the source name (file name or caller supplied label).
	Name string
	// Type is the detected image type (png, jpeg, gif, bmp, webp, tiff).
	Type string
	// Data is the raw image content, passed through unchanged.
	Data []byte
	// Digest is the lowercase hex SHA-256 of Data.
	Digest string
	// Width is the pixel width reported by the image header.
	Width int
	// Height is the pixel height reported by the image header.
	Height int
}

// Digest32 returns the fixed-length identity used in cell formulas and placeholders.
func (r Record) Digest32() string {
	if len(r.Digest) <= DigestLen {
		return r.Digest
	}
	return r.Digest[:DigestLen]
}

// FromBytes creates a Record from raw image bytes.
func FromBytes(name string, data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w: empty data", name, ErrUnsupportedImage)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrUnsupportedImage, err)
	}
	if _, ok := contentTypes[format]; !ok {
		return nil, fmt.Errorf("%s: %w: %s", name, ErrUnsupportedImage, format)
	}

	sum := sha256.Sum256(data)
	return &Record{
		Name:   name,
		Type:   format,
		Data:   data,
		Digest: hex.EncodeToString(sum[:]),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// FromReader reads r to the end and creates a Record from its content.
func FromReader(name string, r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	return FromBytes(name, data)
}

// FromFile reads the image at path.
func FromFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return FromBytes(filepath.Base(path), data)
}

// ContentType returns the MIME type for an image type, and whether it is known.
func ContentType(imageType string) (string, bool) {
	ct, ok := contentTypes[imageType]
	return ct, ok
}
