package subtitles

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"reel/internal/logging"
)

// TrackEntry is one rendered WebVTT cue.
type TrackEntry struct {
	Sequence int    `json:"sequence"`
	StartMS  int64  `json:"start_ms"`
	EndMS    int64  `json:"end_ms"`
	Text     string `json:"text"`
}

// String renders the entry as a WebVTT cue block including its trailing blank line.
func (e TrackEntry) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e TrackEntry) writeTo(b *strings.Builder) {
	b.WriteString(strconv.Itoa(e.Sequence))
	b.WriteByte('\n')
	b.WriteString(FormatMillis(e.StartMS))
	b.WriteString(vttArrow)
	b.WriteString(FormatMillis(e.EndMS))
	b.WriteByte('\n')
	b.WriteString(e.Text)
	b.WriteString("\n\n")
}

// Result is the outcome of converting one subtitle file.
type Result struct {
	Format   Format `json:"format"`
	Encoding string `json:"encoding"`
	// Track is the WebVTT document without the style block.
	Track string `json:"track"`
	// Style holds one ::cue rule per color class; empty unless SAMI colors were found.
	Style         string       `json:"style"`
	Colors        []ColorClass `json:"colors"`
	Entries       []TrackEntry `json:"entries,omitempty"`
	DroppedBlocks int          `json:"dropped_blocks"`
}

// Document returns the WebVTT document ready to serve, with the STYLE block
// placed directly after the header when there is one.
func (r *Result) Document() string {
	if r == nil {
		return ""
	}
	if strings.TrimSpace(r.Style) == "" {
		return r.Track
	}
	body, ok := strings.CutPrefix(r.Track, vttHeader)
	if !ok {
		return r.Track
	}
	body = strings.TrimLeft(body, "\r\n")
	var b strings.Builder
	b.Grow(len(r.Track) + len(r.Style) + 16)
	b.WriteString(vttHeader)
	b.WriteString("\n\n")
	b.WriteString(vttStyleHeader)
	b.WriteByte('\n')
	b.WriteString(r.Style)
	if !strings.HasSuffix(r.Style, "\n") {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(body)
	return b.String()
}

// ColorMap returns the color to class mapping. Ordering is carried by Colors.
func (r *Result) ColorMap() map[string]string {
	out := make(map[string]string, len(r.Colors))
	for _, cls := range r.Colors {
		out[cls.Color] = cls.Class
	}
	return out
}

// Options configures a Converter.
type Options struct {
	// Encodings overrides DefaultCandidateEncodings for SAMI detection.
	Encodings []string
	// CueDuration overrides DefaultCueDuration for the final SAMI cue.
	CueDuration time.Duration
}

// Converter turns subtitle bytes into WebVTT. It keeps no per-call state and
// is safe for concurrent use.
type Converter struct {
	detector    *Detector
	cueDuration time.Duration
	logger      *slog.Logger
}

// NewConverter builds a Converter. A nil logger discards output.
func NewConverter(opts Options, logger *slog.Logger) *Converter {
	duration := opts.CueDuration
	if duration <= 0 {
		duration = DefaultCueDuration
	}
	return &Converter{
		detector:    NewDetector(opts.Encodings...),
		cueDuration: duration,
		logger:      logging.NewComponentLogger(logger, "subtitles"),
	}
}

// Fingerprint identifies the options that change conversion output: the
// candidate encodings in order and the final cue duration. Converters with
// equal fingerprints produce identical results for the same input.
func (c *Converter) Fingerprint() string {
	sum := sha256.Sum256([]byte(strings.Join(c.detector.encodings, ",") + "|" +
		strconv.FormatInt(c.cueDuration.Milliseconds(), 10)))
	return hex.EncodeToString(sum[:4])
}

var defaultConverter = NewConverter(Options{}, nil)

// Convert converts data with default options.
func Convert(data []byte, format Format) (*Result, error) {
	return defaultConverter.Convert(data, format)
}

// Convert decodes data and converts it according to format.
func (c *Converter) Convert(data []byte, format Format) (*Result, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
	detection := c.detector.Detect(data, format)
	if format == FormatSAMI {
		c.logger.Debug("sami encoding selected",
			logging.String("encoding", detection.Encoding),
			logging.Int("score", detection.Score),
			logging.Bool("bom", detection.BOM),
			logging.Bool("fallback", detection.Fallback),
		)
	}
	result, err := c.ConvertText(detection.Text, format)
	if err != nil {
		return nil, err
	}
	result.Encoding = detection.Encoding
	return result, nil
}

// ConvertText converts already decoded text according to format.
func (c *Converter) ConvertText(text string, format Format) (*Result, error) {
	switch format {
	case FormatSAMI:
		return c.convertSAMI(text), nil
	case FormatSRT:
		return &Result{
			Format:   format,
			Encoding: fallbackEncoding,
			Track:    vttHeader + "\n\n" + RewriteSRTTimestamps(text),
		}, nil
	case FormatVTT:
		return &Result{Format: format, Encoding: fallbackEncoding, Track: text}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

func (c *Converter) convertSAMI(doc string) *Result {
	blocks, dropped := parseSyncBlocks(doc, c.cueDuration.Milliseconds())
	registry := NewColorRegistry()

	var b strings.Builder
	b.WriteString(vttHeader)
	b.WriteString("\n\n")

	entries := make([]TrackEntry, 0, len(blocks))
	blank := 0
	for _, block := range blocks {
		text := NormalizeCueText(registry.Rewrite(block.Payload))
		if IsBlankCue(text) {
			blank++
			continue
		}
		entry := TrackEntry{
			Sequence: len(entries) + 1,
			StartMS:  block.StartMS,
			EndMS:    block.EndMS,
			Text:     text,
		}
		entry.writeTo(&b)
		entries = append(entries, entry)
	}

	c.logger.Debug("sami conversion complete",
		logging.Int("sync_blocks", len(blocks)+dropped),
		logging.Int("cues", len(entries)),
		logging.Int("dropped_blocks", dropped),
		logging.Int("blank_blocks", blank),
		logging.Int("color_classes", registry.Len()),
	)

	return &Result{
		Format:        FormatSAMI,
		Encoding:      fallbackEncoding,
		Track:         b.String(),
		Style:         registry.Stylesheet(),
		Colors:        registry.Classes(),
		Entries:       entries,
		DroppedBlocks: dropped,
	}
}
