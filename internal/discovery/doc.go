// Package discovery finds the subtitle files that belong to a video and the
// videos in a media library, and converts a video's subtitles in parallel.
//
// A subtitle belongs to a video when it sits in the same directory, carries a
// supported extension, and its name without extension starts with the video's
// name without extension ("movie.mkv" owns "movie.ko.smi").
package discovery
