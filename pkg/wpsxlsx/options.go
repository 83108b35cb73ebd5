// Package wpsxlsx writes xlsx workbooks with pictures embedded in cells using
// the WPS Office cellimages extension, and reads such workbooks back.
package wpsxlsx

import (
	"io"
	"log/slog"
)

// Options configures workbook writing behavior.
type Options struct {
	// StringsToURLs writes strings that look like URLs as hyperlinks.
	// If nil, defaults to true.
	StringsToURLs *bool
	// StringsToFormulas writes strings starting with "=" as formulas.
	// If nil, defaults to true.
	StringsToFormulas *bool
	// Logger receives warnings. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default writing options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldConvertURLs returns whether URL-like strings become hyperlinks.
func (o Options) ShouldConvertURLs() bool {
	if o.StringsToURLs != nil {
		return *o.StringsToURLs
	}
	return true
}

// ShouldConvertFormulas returns whether "=" strings become formulas.
func (o Options) ShouldConvertFormulas() bool {
	if o.StringsToFormulas != nil {
		return *o.StringsToFormulas
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// EmbedOptions configures a single EmbedImage call.
type EmbedOptions struct {
	// CellStyle is an excelize style id applied to the cell (0 for none).
	CellStyle int
	// ImageData is used instead of reading the source path from disk.
	ImageData []byte
	// ImageReader is read to the end instead of the source path. It takes
	// precedence over ImageData.
	ImageReader io.Reader
	// URL is an optional hyperlink written to the same cell.
	URL string
	// Tip is the hyperlink tooltip.
	Tip string
}

// InspectOptions configures Inspect.
type InspectOptions struct {
	// IncludeLinks specifies whether to include cell hyperlinks.
	IncludeLinks bool
}
