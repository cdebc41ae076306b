// Package subtitles converts legacy subtitle files into WebVTT tracks that a
// browser video player can render directly.
//
// SAMI (.smi/.sami) captions arrive in whatever code page the authoring tool
// used, so the converter scores a fixed list of candidate decodings before
// splitting the document into SYNC blocks. Each block has its <font color>
// spans rewritten into WebVTT cue classes, its line-break encodings collapsed
// into plain newlines, and its timing derived from the next SYNC tag. SRT input
// only needs its millisecond separator rewritten, and WebVTT passes through.
//
// Conversion is pure and synchronous. Malformed blocks are dropped rather than
// failing the file; the only error a caller sees is ErrUnsupportedFormat.
package subtitles
