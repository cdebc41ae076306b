package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"reel/internal/discovery"
	"reel/internal/logging"
	"reel/internal/subtitles"
)

const vttContentType = "text/vtt; charset=utf-8"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := discovery.ScanLibrary(s.opts.LibraryDir)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if videos == nil {
		videos = []discovery.Video{}
	}
	s.writeJSON(w, r, http.StatusOK, videos)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := discovery.FindVideo(s.opts.LibraryDir, pathParam(r, "id"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, video)
}

func (s *Server) handleVideoSubtitles(w http.ResponseWriter, r *http.Request) {
	video, err := discovery.FindVideo(s.opts.LibraryDir, pathParam(r, "id"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	subs := video.Subtitles
	if subs == nil {
		subs = []discovery.Descriptor{}
	}
	s.writeJSON(w, r, http.StatusOK, subs)
}

func (s *Server) handleSubtitle(w http.ResponseWriter, r *http.Request) {
	desc, err := discovery.Resolve(s.opts.LibraryDir, pathParam(r, "filename"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	result, cached, err := discovery.ReadAndConvert(r.Context(), s.converter, desc)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	logging.WithContext(r.Context(), s.logger).Info("subtitle served",
		logging.String(logging.FieldFile, desc.Filename),
		logging.String("format", desc.Format.String()),
		logging.String("encoding", result.Encoding),
		logging.Int("cues", len(result.Entries)),
		logging.Int("color_classes", len(result.Colors)),
		logging.Bool("cached", cached),
	)

	h := w.Header()
	h.Set("Content-Type", vttContentType)
	h.Set("Cache-Control", "public, max-age="+strconv.Itoa(s.opts.CacheMaxAge))
	h.Set("X-Subtitle-Encoding", result.Encoding)
	http.ServeContent(w, r, desc.Filename, modTime(desc.Path), strings.NewReader(result.Document()))
}

// pathParam returns a route parameter decoded exactly once. chi matches on
// RawPath when the request carried escapes Path cannot represent (such as
// %2F), and on the already decoded Path otherwise.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// writeFailure maps domain errors onto HTTP statuses.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, subtitles.ErrUnsupportedFormat):
		status, message = http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, discovery.ErrInvalidName):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, discovery.ErrNotFound), errors.Is(err, os.ErrNotExist):
		status, message = http.StatusNotFound, "not found"
	}

	logger := logging.WithContext(r.Context(), s.logger)
	if status == http.StatusInternalServerError {
		logging.ErrorWithContext(logger, "request failed", "request_failed",
			logging.String("path", r.URL.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check library_dir permissions"),
		)
	} else {
		logger.Debug("request rejected",
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
			logging.Error(err),
		)
	}
	s.writeError(w, r, status, message)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WithContext(r.Context(), s.logger).Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, map[string]string{"error": message})
}
