package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatAuto Format = "auto"
	FormatXml  Format = "xml"
	FormatPbf  Format = "pbf"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(value)) {
	case "", FormatAuto:
		return FormatAuto, nil

	case FormatXml:
		return FormatXml, nil

	case FormatPbf:
		return FormatPbf, nil

	default:
		return "", fmt.Errorf("unsupported input format: %s", value)
	}
}

// DetectFormat guesses the format from the file name, a .pbf suffix means pbf, everything else is read as xml.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pbf") {
		return FormatPbf
	}

	return FormatXml
}

func isBzip2(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bz2")
}
