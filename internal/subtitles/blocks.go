package subtitles

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	syncTag       = regexp.MustCompile(`(?i)<SYNC\s+Start\s*=\s*(\d+)[^>]*>`)
	syncOpen      = regexp.MustCompile(`(?i)<SYNC`)
	paragraphOpen = regexp.MustCompile(`(?i)<P[^>]*?>`)
)

// TimedBlock is the raw payload of one SAMI SYNC block with its timing.
type TimedBlock struct {
	StartMS int64
	EndMS   int64
	Payload string
}

// payloadMatcher extracts the caption text from one SYNC span.
type payloadMatcher struct {
	name  string
	match func(span string) (string, bool)
}

// payloadMatchers are tried in order and the first hit wins. The later
// entries only exist to rescue malformed documents.
var payloadMatchers = []payloadMatcher{
	{name: "class", match: regexpMatcher(`(?is)<P[^>]*?Class\s*=\s*[^>]*?>(.*?)(?:</P>|<SYNC|$)`)},
	{name: "paragraph", match: regexpMatcher(`(?is)<P[^>]*?>(.*?)(?:</P>|<SYNC|$)`)},
	{name: "next-tag", match: regexpMatcher(`(?is)<P[^>]*?>(.*?)(?:<[^>]*>|$)`)},
	{name: "scan", match: scanParagraph},
}

func regexpMatcher(pattern string) func(string) (string, bool) {
	re := regexp.MustCompile(pattern)
	return func(span string) (string, bool) {
		m := re.FindStringSubmatch(span)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}

// scanParagraph takes everything after the first <P ...> tag up to the next
// one, or to the end of the span.
func scanParagraph(span string) (string, bool) {
	loc := paragraphOpen.FindStringIndex(span)
	if loc == nil {
		return "", false
	}
	rest := span[loc[0]:]
	textStart := strings.IndexByte(rest, '>') + 1
	body := rest[textStart:]
	if next := paragraphOpen.FindStringIndex(body); next != nil {
		body = body[:next[0]]
	}
	return body, true
}

// extractPayload returns the caption text of a span and the matcher that found it.
func extractPayload(span string) (string, string, bool) {
	for _, m := range payloadMatchers {
		if payload, ok := m.match(span); ok {
			return payload, m.name, true
		}
	}
	return "", "", false
}

type syncMark struct {
	start int64
	end   int // byte offset just past the SYNC tag
}

// ParseSyncBlocks splits a SAMI document into timed blocks in document order,
// using DefaultCueDuration for the last block.
func ParseSyncBlocks(doc string) []TimedBlock {
	blocks, _ := parseSyncBlocks(doc, DefaultCueDuration.Milliseconds())
	return blocks
}

// parseSyncBlocks returns the blocks found and how many SYNC spans were
// dropped because no payload could be located.
func parseSyncBlocks(doc string, lastDurationMS int64) ([]TimedBlock, int) {
	marks := scanSyncMarks(doc)
	blocks := make([]TimedBlock, 0, len(marks))
	dropped := 0
	for i, mark := range marks {
		spanEnd := len(doc)
		if i+1 < len(marks) && mark.end+1 <= len(doc) {
			// The next literal SYNC opener, not the next parsed tag, bounds
			// the span so duplicated tag text stays out of the payload.
			if loc := syncOpen.FindStringIndex(doc[mark.end+1:]); loc != nil {
				spanEnd = mark.end + 1 + loc[0]
			}
		}
		payload, _, ok := extractPayload(doc[mark.end:spanEnd])
		if !ok {
			dropped++
			continue
		}

		end := mark.start + lastDurationMS
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		if end < mark.start {
			end = mark.start
		}
		blocks = append(blocks, TimedBlock{StartMS: mark.start, EndMS: end, Payload: payload})
	}
	return blocks, dropped
}

func scanSyncMarks(doc string) []syncMark {
	matches := syncTag.FindAllStringSubmatchIndex(doc, -1)
	marks := make([]syncMark, 0, len(matches))
	for _, m := range matches {
		start, err := strconv.ParseInt(doc[m[2]:m[3]], 10, 64)
		if err != nil {
			continue
		}
		marks = append(marks, syncMark{start: start, end: m[1]})
	}
	return marks
}
