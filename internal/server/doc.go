// Package server exposes the media library over HTTP: video listings with
// their subtitle descriptors, and each subtitle file converted on the fly to
// WebVTT with its color stylesheet merged in.
package server
