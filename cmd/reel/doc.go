// Package main implements the reel command line: one-off subtitle
// conversion and inspection, library listing, and the HTTP track server.
package main
