package plotting

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a plot output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ErrUnknownFormat is returned when the name does not match a known format.
var ErrUnknownFormat = errors.New("unknown plot format")

// NormalizeFormat maps arbitrary user input to a canonical format identifier.
func NormalizeFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "png":
		return FormatPNG
	case "svg":
		return FormatSVG
	case "pdf":
		return FormatPDF
	default:
		return Format(name)
	}
}

// SupportedFormats returns the formats the renderer can encode.
func SupportedFormats() []Format {
	return []Format{FormatPNG, FormatSVG, FormatPDF}
}

// ParseFormat normalizes name and rejects formats the renderer cannot encode.
func ParseFormat(name string) (Format, error) {
	f := NormalizeFormat(name)
	switch f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Ext returns the file extension for the format, including the dot.
// The plot save path's extension selects the encoder.
func (f Format) Ext() string {
	return "." + string(f)
}
