package discovery

import (
	"net/url"
	"path/filepath"
	"strings"

	"reel/internal/subtitles"
)

// SubtitleRoute is the HTTP path prefix subtitle descriptors link to.
const SubtitleRoute = "/api/subtitles/"

// Descriptor describes one subtitle file available for a video.
type Descriptor struct {
	Filename  string           `json:"filename"`
	Path      string           `json:"path"`
	Extension string           `json:"extension"`
	Format    subtitles.Format `json:"format"`
	Language  string           `json:"language"`
	Label     string           `json:"label"`
	URL       string           `json:"url"`
}

// NewDescriptor builds the descriptor for filename inside dir. The second
// return is false when the extension is not a subtitle format.
func NewDescriptor(dir, filename string) (Descriptor, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, err := subtitles.FormatFromExtension(ext)
	if err != nil {
		return Descriptor{}, false
	}
	language := subtitles.DetectLanguage(filename)
	return Descriptor{
		Filename:  filename,
		Path:      filepath.Join(dir, filename),
		Extension: ext,
		Format:    format,
		Language:  language,
		Label:     subtitles.LanguageLabel(language),
		URL:       SubtitleURL(filename),
	}, true
}

// SubtitleURL returns the route serving filename as WebVTT.
func SubtitleURL(filename string) string {
	return SubtitleRoute + url.PathEscape(filename)
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
