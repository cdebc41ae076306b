package subtitles

import "time"

// WebVTT output framing.
const (
	vttHeader      = "WEBVTT"
	vttStyleHeader = "STYLE"
	vttArrow       = " --> "
)

// DefaultCueDuration is applied to the final SAMI block, which has no
// following SYNC tag to borrow an end time from.
const DefaultCueDuration = 3000 * time.Millisecond

// Encoding detection weights.
const (
	scoreTargetScriptRune = 10
	scoreSAMITag          = 50
	scoreSyncTag          = 30
	scoreParagraphTag     = 20
	scoreReplacementRune  = -50
	scoreGarbledRun       = -20
)

// DefaultCandidateEncodings lists the SAMI decodings tried, in order, when no
// byte-order mark declares the charset. Labels follow the WHATWG encoding
// index; windows-949 is the CP949 label there.
var DefaultCandidateEncodings = []string{"euc-kr", "windows-949", "utf-8", "utf-16le"}

// colorClassPrefix names the cue classes generated for <font color> spans.
const colorClassPrefix = "color"
