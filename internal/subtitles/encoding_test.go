package subtitles

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
)

const koreanSAMI = "<SAMI><BODY><SYNC Start=0><P Class=KRCC>안녕하세요</P></BODY></SAMI>"

func TestDetectEncodingPicksEUCKR(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().String(koreanSAMI)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	detection := DetectEncoding([]byte(encoded), FormatSAMI)
	if detection.Encoding != "euc-kr" {
		t.Fatalf("expected euc-kr, got %q", detection.Encoding)
	}
	if detection.Text != koreanSAMI {
		t.Fatalf("unexpected decoded text %q", detection.Text)
	}
	if detection.Score != 150 {
		t.Fatalf("expected score 150, got %d", detection.Score)
	}
	if detection.Fallback || detection.BOM {
		t.Fatalf("unexpected flags: %+v", detection)
	}
	if len(detection.Candidates) != len(DefaultCandidateEncodings) {
		t.Fatalf("expected %d candidates, got %d", len(DefaultCandidateEncodings), len(detection.Candidates))
	}
}

func TestDetectEncodingTieKeepsEarlierCandidate(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().String(koreanSAMI)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	detection := NewDetector("windows-949", "euc-kr").Detect([]byte(encoded), FormatSAMI)
	if detection.Encoding != "windows-949" {
		t.Fatalf("expected first of equal candidates to win, got %q", detection.Encoding)
	}
}

func TestDetectEncodingFallsBackToUTF8(t *testing.T) {
	detection := DetectEncoding([]byte("\xff\xff\xff\xff"), FormatSAMI)
	if !detection.Fallback {
		t.Fatalf("expected fallback, got %+v", detection)
	}
	if detection.Encoding != "utf-8" {
		t.Fatalf("expected utf-8 fallback, got %q", detection.Encoding)
	}
}

func TestDetectEncodingHonorsBOM(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		format   Format
		encoding string
		text     string
	}{
		{name: "utf8", data: []byte("\xEF\xBB\xBFhello"), format: FormatSRT, encoding: "utf-8", text: "hello"},
		{name: "utf16le", data: []byte("\xFF\xFEh\x00i\x00"), format: FormatSAMI, encoding: "utf-16le", text: "hi"},
		{name: "utf16be", data: []byte("\xFE\xFF\x00h\x00i"), format: FormatVTT, encoding: "utf-16be", text: "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detection := DetectEncoding(tc.data, tc.format)
			if !detection.BOM {
				t.Fatalf("expected BOM detection, got %+v", detection)
			}
			if detection.Encoding != tc.encoding || detection.Text != tc.text {
				t.Fatalf("got %q/%q want %q/%q", detection.Encoding, detection.Text, tc.encoding, tc.text)
			}
		})
	}
}

func TestDetectEncodingNonSAMIReadsUTF8(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\n한국어\n"
	detection := DetectEncoding([]byte(input), FormatSRT)
	if detection.Encoding != "utf-8" || detection.Text != input {
		t.Fatalf("unexpected detection: %+v", detection)
	}
	if len(detection.Candidates) != 0 {
		t.Fatalf("expected no scoring for srt, got %d candidates", len(detection.Candidates))
	}
}

func TestDetectorRecordsUnknownLabels(t *testing.T) {
	detection := NewDetector("no-such-charset", "utf-8").Detect([]byte("<SAMI><SYNC Start=0><P>x"), FormatSAMI)
	if detection.Encoding != "utf-8" {
		t.Fatalf("expected utf-8, got %q", detection.Encoding)
	}
	if detection.Candidates[0].Err == nil {
		t.Fatal("expected an error for the unknown label")
	}
}

func TestNewDetectorDefaults(t *testing.T) {
	got := NewDetector(" ", "").Encodings()
	if strings.Join(got, ",") != strings.Join(DefaultCandidateEncodings, ",") {
		t.Fatalf("expected defaults, got %v", got)
	}
	if got := NewDetector(" utf-8 ").Encodings(); len(got) != 1 || got[0] != "utf-8" {
		t.Fatalf("expected trimmed label, got %v", got)
	}
}

func TestScoreCandidate(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"<SAMI>", 50},
		{"<SAMI><SYNC Start=0><P>", 100},
		{"<sync start=0>", 0},
		{"가나", 20},
		{"\uFFFD", -50},
		{"ìëí", -20},
		{"ìëí abc ÀÁÂ", -40},
	}
	for _, tc := range cases {
		if got := ScoreCandidate(tc.text); got != tc.want {
			t.Fatalf("ScoreCandidate(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
