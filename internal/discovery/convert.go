package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"reel/internal/logging"
	"reel/internal/subtitles"
)

// Converter turns raw subtitle bytes into a WebVTT result. The boolean reports
// whether the result came from a cache.
type Converter interface {
	Convert(ctx context.Context, data []byte, format subtitles.Format) (*subtitles.Result, bool, error)
}

// Converted is the outcome of converting one descriptor.
type Converted struct {
	Descriptor Descriptor
	Result     *subtitles.Result
	Cached     bool
	Err        error
}

// ReadAndConvert reads the file behind desc and converts it.
func ReadAndConvert(ctx context.Context, conv Converter, desc Descriptor) (*subtitles.Result, bool, error) {
	data, err := os.ReadFile(desc.Path)
	if err != nil {
		return nil, false, fmt.Errorf("read subtitle %s: %w", desc.Filename, err)
	}
	return conv.Convert(ctx, data, desc.Format)
}

// ConvertAll converts every descriptor concurrently. Results keep the order
// of descs; a failed file is reported in its slot and does not stop the rest.
func ConvertAll(ctx context.Context, conv Converter, descs []Descriptor, logger *slog.Logger) []Converted {
	logger = logging.NewComponentLogger(logger, "discovery")
	results := make([]Converted, len(descs))

	var wg sync.WaitGroup
	for i, desc := range descs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i].Descriptor = desc
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			result, cached, err := ReadAndConvert(ctx, conv, desc)
			if err != nil {
				results[i].Err = err
				logging.WarnWithContext(logging.WithContext(ctx, logger), "subtitle conversion failed", "subtitle_convert_failed",
					logging.String(logging.FieldFile, desc.Filename),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check the file extension and that it is readable"),
				)
				return
			}
			results[i].Result = result
			results[i].Cached = cached
		}()
	}
	wg.Wait()
	return results
}
