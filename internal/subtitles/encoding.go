package subtitles

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dimchansky/utfbom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

const fallbackEncoding = "utf-8"

// garbledRun matches runs of Latin-1 letters that usually mean multi-byte
// Korean text was decoded one byte at a time.
var garbledRun = regexp.MustCompile(`[\x{BF}\x{C0}-\x{FF}]{3,}`)

// Candidate is one attempted decoding of a subtitle file.
type Candidate struct {
	Encoding string
	Text     string
	Score    int
	Err      error
}

// Detection is the outcome of DetectEncoding.
type Detection struct {
	Encoding string
	Text     string
	Score    int
	// BOM is set when a byte-order mark declared the charset and no scoring ran.
	BOM bool
	// Fallback is set when no candidate scored above zero.
	Fallback   bool
	Candidates []Candidate
}

// Detector guesses the text encoding of undeclared SAMI files.
type Detector struct {
	encodings []string
}

// NewDetector returns a detector trying the given encoding labels in order.
// With no labels it uses DefaultCandidateEncodings.
func NewDetector(labels ...string) *Detector {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			cleaned = append(cleaned, label)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultCandidateEncodings...)
	}
	return &Detector{encodings: cleaned}
}

// Encodings returns the candidate labels in the order they are tried.
func (d *Detector) Encodings() []string {
	return append([]string(nil), d.encodings...)
}

// DetectEncoding decodes data with the default candidate list.
func DetectEncoding(data []byte, format Format) Detection {
	return NewDetector().Detect(data, format)
}

// Detect decodes data into text. Only SAMI input is scored; other formats are
// read as UTF-8. A leading byte-order mark always wins. Detect never fails: the
// worst case is a UTF-8 decode containing replacement characters.
func (d *Detector) Detect(data []byte, format Format) Detection {
	if text, name, ok := decodeWithBOM(data); ok {
		return Detection{Encoding: name, Text: text, BOM: true}
	}
	if format != FormatSAMI {
		return Detection{Encoding: fallbackEncoding, Text: decodeUTF8(data)}
	}

	result := Detection{Candidates: make([]Candidate, 0, len(d.encodings))}
	best := -1
	bestScore := 0
	for _, label := range d.encodings {
		candidate := Candidate{Encoding: label}
		enc, _ := charset.Lookup(label)
		if enc == nil {
			candidate.Err = fmt.Errorf("unknown encoding label %q", label)
			result.Candidates = append(result.Candidates, candidate)
			continue
		}
		text, err := decodeBytes(enc, data)
		if err != nil {
			candidate.Err = err
			result.Candidates = append(result.Candidates, candidate)
			continue
		}
		candidate.Text = text
		candidate.Score = ScoreCandidate(text)
		result.Candidates = append(result.Candidates, candidate)
		if candidate.Score > bestScore {
			bestScore = candidate.Score
			best = len(result.Candidates) - 1
		}
	}

	if best < 0 {
		result.Encoding = fallbackEncoding
		result.Text = decodeUTF8(data)
		result.Fallback = true
		return result
	}
	winner := result.Candidates[best]
	result.Encoding = winner.Encoding
	result.Text = winner.Text
	result.Score = winner.Score
	return result
}

// ScoreCandidate rates how plausible a decoded SAMI document looks. Hangul
// syllables and SAMI structure raise the score; replacement characters and
// runs of accented Latin-1 letters lower it.
func ScoreCandidate(text string) int {
	score := 0
	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			score += scoreTargetScriptRune
		case r == '\uFFFD':
			score += scoreReplacementRune
		}
	}
	if strings.Contains(text, "<SAMI>") {
		score += scoreSAMITag
	}
	if strings.Contains(text, "<SYNC") {
		score += scoreSyncTag
	}
	if strings.Contains(text, "<P") {
		score += scoreParagraphTag
	}
	score += scoreGarbledRun * len(garbledRun.FindAllStringIndex(text, -1))
	return score
}

func decodeBytes(enc encoding.Encoding, data []byte) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeUTF8(data []byte) string {
	text, err := decodeBytes(unicode.UTF8, data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return text
}

func decodeWithBOM(data []byte) (string, string, bool) {
	reader, bom := utfbom.Skip(bytes.NewReader(data))
	var enc encoding.Encoding
	var name string
	switch bom {
	case utfbom.UTF8:
		enc, name = unicode.UTF8, "utf-8"
	case utfbom.UTF16LittleEndian:
		enc, name = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "utf-16le"
	case utfbom.UTF16BigEndian:
		enc, name = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "utf-16be"
	case utfbom.UTF32LittleEndian:
		enc, name = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), "utf-32le"
	case utfbom.UTF32BigEndian:
		enc, name = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), "utf-32be"
	default:
		return "", "", false
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", "", false
	}
	text, err := decodeBytes(enc, body)
	if err != nil {
		return "", "", false
	}
	return text, name, true
}
