package subtitles

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the subtitle syntax of an input file.
type Format string

const (
	// FormatSAMI is Microsoft SAMI closed-caption markup (.smi, .sami).
	FormatSAMI Format = "sami"
	// FormatSRT is SubRip timed text (.srt).
	FormatSRT Format = "srt"
	// FormatVTT is WebVTT, already in the output format (.vtt).
	FormatVTT Format = "vtt"
)

// ErrUnsupportedFormat reports an input whose format the converter cannot
// handle. It is the only condition Convert treats as fatal.
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

var extensionFormats = map[string]Format{
	".smi":  FormatSAMI,
	".sami": FormatSAMI,
	".srt":  FormatSRT,
	".vtt":  FormatVTT,
}

// SupportedExtensions returns the recognised subtitle extensions in a stable order.
func SupportedExtensions() []string {
	return []string{".srt", ".vtt", ".smi", ".sami"}
}

// FormatFromExtension maps a file extension (with or without the leading dot)
// to its Format.
func FormatFromExtension(ext string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized != "" && !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	format, ok := extensionFormats[normalized]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// FormatFromPath maps a file name or path to its Format using its extension.
func FormatFromPath(path string) (Format, error) {
	return FormatFromExtension(filepath.Ext(path))
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatSAMI, FormatSRT, FormatVTT:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	return string(f)
}
