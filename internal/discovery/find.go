package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"reel/internal/subtitles"
)

var (
	// ErrInvalidName rejects subtitle names that are not plain file names.
	ErrInvalidName = errors.New("invalid subtitle file name")
	// ErrNotFound reports a subtitle or video missing from the library.
	ErrNotFound = errors.New("not found")
)

// Find lists the subtitle files in dir that belong to videoPath, in directory
// order. A missing directory yields no descriptors and no error.
func Find(dir, videoPath string) ([]Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read subtitle directory: %w", err)
	}

	videoStem := stem(videoPath)
	var found []Descriptor
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(stem(name), videoStem) {
			continue
		}
		if desc, ok := NewDescriptor(dir, name); ok {
			found = append(found, desc)
		}
	}
	return found, nil
}

// Resolve maps a requested subtitle file name to its path inside dir. Names
// containing path separators or parent references are rejected so requests
// cannot escape the library.
func Resolve(dir, filename string) (Descriptor, error) {
	if filename == "" || filename == "." || filename == ".." ||
		filepath.Base(filename) != filename || strings.ContainsAny(filename, `/\`) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	desc, ok := NewDescriptor(dir, filename)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", subtitles.ErrUnsupportedFormat, filename)
	}
	info, err := os.Stat(desc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Descriptor{}, fmt.Errorf("subtitle %q: %w", filename, ErrNotFound)
		}
		return Descriptor{}, fmt.Errorf("stat subtitle: %w", err)
	}
	if info.IsDir() {
		return Descriptor{}, fmt.Errorf("subtitle %q: %w", filename, ErrNotFound)
	}
	return desc, nil
}
