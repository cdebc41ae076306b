package discovery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reel/internal/discovery"
	"reel/internal/subtitles"
	"reel/internal/trackcache"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestFindMatchesVideoPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"movie.mkv":      "",
		"movie.ko.smi":   "",
		"movie.en.srt":   "",
		"movie.vtt":      "",
		"movie.nfo":      "",
		"other.srt":      "",
		"Movie.fr.srt":   "",
		"movie.ja.SAMI":  "",
		"trailer.ko.smi": "",
	})

	found, err := discovery.Find(dir, filepath.Join(dir, "movie.mkv"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	got := make(map[string]discovery.Descriptor, len(found))
	for _, desc := range found {
		got[desc.Filename] = desc
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 subtitles, got %v", found)
	}

	ko := got["movie.ko.smi"]
	if ko.Format != subtitles.FormatSAMI || ko.Language != "ko" || ko.Label != "한국어" {
		t.Fatalf("unexpected korean descriptor: %+v", ko)
	}
	if ko.URL != "/api/subtitles/movie.ko.smi" || ko.Path != filepath.Join(dir, "movie.ko.smi") {
		t.Fatalf("unexpected descriptor location: %+v", ko)
	}
	if en := got["movie.en.srt"]; en.Language != "en" || en.Extension != ".srt" {
		t.Fatalf("unexpected english descriptor: %+v", en)
	}
	if sami := got["movie.ja.SAMI"]; sami.Extension != ".sami" || sami.Language != "ko" {
		t.Fatalf("SAMI files are treated as Korean, got %+v", sami)
	}
}

func TestFindMissingDirectory(t *testing.T) {
	found, err := discovery.Find(filepath.Join(t.TempDir(), "absent"), "movie.mkv")
	if err != nil || len(found) != 0 {
		t.Fatalf("expected empty result, got %v, %v", found, err)
	}
}

func TestSubtitleURLEscapes(t *testing.T) {
	if got := discovery.SubtitleURL("my movie#1.ko.srt"); got != "/api/subtitles/my%20movie%231.ko.srt" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"movie.srt": "", "notes.txt": ""})

	desc, err := discovery.Resolve(dir, "movie.srt")
	if err != nil || desc.Format != subtitles.FormatSRT {
		t.Fatalf("Resolve = %+v, %v", desc, err)
	}

	cases := []struct {
		name string
		want error
	}{
		{"../movie.srt", discovery.ErrInvalidName},
		{"sub/movie.srt", discovery.ErrInvalidName},
		{"..", discovery.ErrInvalidName},
		{"notes.txt", subtitles.ErrUnsupportedFormat},
		{"absent.srt", discovery.ErrNotFound},
	}
	for _, tc := range cases {
		if _, err := discovery.Resolve(dir, tc.name); !errors.Is(err, tc.want) {
			t.Fatalf("Resolve(%q) error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestScanLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"0f8fad5b-d9cb-469f-a165-70867728950e-Holiday.mp4": "video",
		"0f8fad5b-d9cb-469f-a165-70867728950e-Holiday.srt": "",
		"series.MKV":                                       "video",
		"readme.txt":                                       "",
		"series.ko.smi":                                    "",
	})

	videos, err := discovery.ScanLibrary(dir)
	if err != nil {
		t.Fatalf("ScanLibrary: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %+v", videos)
	}
	byID := map[string]discovery.Video{}
	for _, v := range videos {
		byID[v.ID] = v
	}
	holiday := byID["0f8fad5b-d9cb-469f-a165-70867728950e-Holiday"]
	if holiday.Title != "Holiday" || holiday.Size != 5 || len(holiday.Subtitles) != 1 {
		t.Fatalf("unexpected holiday video: %+v", holiday)
	}
	if series := byID["series"]; series.Title != "series" || len(series.Subtitles) != 1 {
		t.Fatalf("unexpected series video: %+v", series)
	}

	if _, err := discovery.FindVideo(dir, "missing"); !errors.Is(err, discovery.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTitle(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"Plain Name", "Plain Name"},
		{"0f8fad5b-d9cb-469f-a165-70867728950e_Trip", "Trip"},
		{"0f8fad5b-d9cb-469f-a165-70867728950e", "0f8fad5b-d9cb-469f-a165-70867728950e"},
		{"", "Untitled Video"},
	}
	for _, tc := range cases {
		if got := discovery.Title(tc.id); got != tc.want {
			t.Fatalf("Title(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestConvertAllKeepsOrderAndReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.srt": "1\n00:00:01,000 --> 00:00:02,000\nA\n",
		"b.vtt": "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nB\n",
		"c.smi": "<SAMI><BODY><SYNC Start=0><P Class=KRCC>C</P></BODY></SAMI>",
	})
	descs := make([]discovery.Descriptor, 0, 4)
	for _, name := range []string{"c.smi", "a.srt", "b.vtt"} {
		desc, ok := discovery.NewDescriptor(dir, name)
		if !ok {
			t.Fatalf("no descriptor for %s", name)
		}
		descs = append(descs, desc)
	}
	missing, _ := discovery.NewDescriptor(dir, "gone.srt")
	descs = append(descs, missing)

	conv := trackcache.NewConverter(subtitles.NewConverter(subtitles.Options{}, nil), nil, nil)
	results := discovery.ConvertAll(context.Background(), conv, descs, nil)
	if len(results) != len(descs) {
		t.Fatalf("expected %d results, got %d", len(descs), len(results))
	}
	for i, res := range results {
		if res.Descriptor.Filename != descs[i].Filename {
			t.Fatalf("slot %d holds %s, want %s", i, res.Descriptor.Filename, descs[i].Filename)
		}
	}
	if results[0].Err != nil || results[0].Result.Entries[0].Text != "C" {
		t.Fatalf("unexpected SAMI result: %+v", results[0])
	}
	if results[1].Err != nil || results[1].Result.Format != subtitles.FormatSRT {
		t.Fatalf("unexpected SRT result: %+v", results[1])
	}
	if results[3].Err == nil || !errors.Is(results[3].Err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", results[3].Err)
	}
}

func TestConvertAllHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	desc, _ := discovery.NewDescriptor(t.TempDir(), "a.srt")
	conv := trackcache.NewConverter(subtitles.NewConverter(subtitles.Options{}, nil), nil, nil)
	results := discovery.ConvertAll(ctx, conv, []discovery.Descriptor{desc}, nil)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", results[0].Err)
	}
}
