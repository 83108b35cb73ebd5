package wpsxlsx

import "testing"

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.ShouldConvertURLs() || !opts.ShouldConvertFormulas() {
		t.Errorf("defaults = urls %v, formulas %v; expected both on", opts.ShouldConvertURLs(), opts.ShouldConvertFormulas())
	}
	if opts.logger() == nil {
		t.Error("default logger is nil")
	}

	off := false
	opts.StringsToURLs = &off
	opts.StringsToFormulas = &off
	if opts.ShouldConvertURLs() || opts.ShouldConvertFormulas() {
		t.Error("explicit false ignored")
	}
}
