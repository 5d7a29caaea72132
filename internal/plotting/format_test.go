package plotting

import (
	"errors"
	"testing"
)

func TestNormalizeFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"", FormatPNG},
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"  svg ", FormatSVG},
		{"Pdf", FormatPDF},
		{"bmp", Format("bmp")},
	}
	for _, tc := range cases {
		if got := NormalizeFormat(tc.in); got != tc.want {
			t.Errorf("NormalizeFormat(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	if err != nil {
		t.Fatalf("ParseFormat failed: %v", err)
	}
	if f != FormatSVG {
		t.Errorf("Expected svg, got %q", f)
	}

	if _, err := ParseFormat("bmp"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) != 3 {
		t.Fatalf("Expected 3 supported formats, got %d", len(formats))
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatPNG.Ext(); got != ".png" {
		t.Errorf("Expected .png, got %q", got)
	}
}
