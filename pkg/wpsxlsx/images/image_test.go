package images

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeImage(t *testing.T, format string, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown format %q", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestFromBytesDetectsType(t *testing.T) {
	tests := []struct {
		format string
		w, h   int
	}{
		{"png", 3, 2},
		{"jpeg", 8, 4},
		{"gif", 1, 1},
	}

	for _, tt := range tests {
		data := encodeImage(t, tt.format, tt.w, tt.h, color.RGBA{R: 255, A: 255})
		rec, err := FromBytes("img."+tt.format, data)
		if err != nil {
			t.Fatalf("FromBytes(%s) failed: %v", tt.format, err)
		}
		if rec.Type != tt.format {
			t.Errorf("Type = %q, expected %q", rec.Type, tt.format)
		}
		if rec.Width != tt.w || rec.Height != tt.h {
			t.Errorf("%s size = %dx%d, expected %dx%d", tt.format, rec.Width, rec.Height, tt.w, tt.h)
		}
	}
}

func TestFromBytesDigest(t *testing.T) {
	data := encodeImage(t, "png", 2, 2, color.White)
	rec, err := FromBytes("a.png", data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])
	if rec.Digest != want {
		t.Errorf("Digest = %q, expected %q", rec.Digest, want)
	}
	if rec.Digest32() != want[:32] {
		t.Errorf("Digest32 = %q, expected %q", rec.Digest32(), want[:32])
	}
	if len(rec.Digest32()) != DigestLen {
		t.Errorf("Digest32 length = %d", len(rec.Digest32()))
	}
}

func TestFromBytesRejectsCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("definitely not an image")},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n")},
	}

	for _, tt := range tests {
		_, err := FromBytes(tt.name, tt.data)
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Errorf("FromBytes(%s) error = %v, expected ErrUnsupportedImage", tt.name, err)
		}
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, encodeImage(t, "png", 1, 1, color.Black), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rec, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if rec.Name != "logo.png" {
		t.Errorf("Name = %q, expected logo.png", rec.Name)
	}

	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestFromReader(t *testing.T) {
	data := encodeImage(t, "gif", 3, 2, color.White)
	rec, err := FromReader("anim.gif", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("FromReader failed: %v", err)
	}
	if rec.Type != "gif" || rec.Width != 3 || rec.Height != 2 || !bytes.Equal(rec.Data, data) {
		t.Errorf("unexpected record: %+v", rec)
	}

	if _, err := FromReader("broken", failingReader{}); err == nil {
		t.Error("expected read error")
	}
}

func TestContentType(t *testing.T) {
	if ct, ok := ContentType("jpeg"); !ok || ct != "image/jpeg" {
		t.Errorf("ContentType(jpeg) = %q, %v", ct, ok)
	}
	if _, ok := ContentType("emf"); ok {
		t.Error("ContentType(emf) should be unknown")
	}
}
