package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

// Video is one playable file in the library with its subtitles.
type Video struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Filename  string       `json:"filename"`
	Path      string       `json:"path"`
	Size      int64        `json:"size"`
	Modified  time.Time    `json:"modified"`
	Subtitles []Descriptor `json:"subtitles"`
}

// IsVideo reports whether name carries a recognised video extension.
func IsVideo(name string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ScanLibrary lists the videos in dir with their subtitle descriptors. A
// missing directory yields an empty library.
func ScanLibrary(dir string) ([]Video, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library directory: %w", err)
	}

	var videos []Video
	for _, entry := range entries {
		if entry.IsDir() || !IsVideo(entry.Name()) {
			continue
		}
		video, err := newVideo(dir, entry)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, nil
}

// FindVideo returns the library video whose ID (file name without
// extension) is id.
func FindVideo(dir, id string) (Video, error) {
	videos, err := ScanLibrary(dir)
	if err != nil {
		return Video{}, err
	}
	for _, video := range videos {
		if video.ID == id {
			return video, nil
		}
	}
	return Video{}, fmt.Errorf("video %q: %w", id, ErrNotFound)
}

func newVideo(dir string, entry fs.DirEntry) (Video, error) {
	info, err := entry.Info()
	if err != nil {
		return Video{}, fmt.Errorf("stat video %s: %w", entry.Name(), err)
	}
	path := filepath.Join(dir, entry.Name())
	subs, err := Find(dir, path)
	if err != nil {
		return Video{}, err
	}
	id := stem(entry.Name())
	return Video{
		ID:        id,
		Title:     Title(id),
		Filename:  entry.Name(),
		Path:      path,
		Size:      info.Size(),
		Modified:  info.ModTime().UTC(),
		Subtitles: subs,
	}, nil
}

// Title derives a display title from a video ID. Uploads were stored under a
// UUID prefix ("<uuid>-Movie Name"), which is stripped when present.
func Title(id string) string {
	const uuidLen = 36
	title := id
	if len(id) >= uuidLen {
		if _, err := uuid.Parse(id[:uuidLen]); err == nil {
			if trimmed := strings.TrimLeft(id[uuidLen:], "-_"); trimmed != "" {
				title = trimmed
			}
		}
	}
	if title == "" {
		return "Untitled Video"
	}
	return title
}
