package trackcache

import (
	"context"
	"log/slog"

	"reel/internal/logging"
	"reel/internal/subtitles"
)

// Converter wraps a subtitles.Converter with the cache. A nil store disables
// caching. Cache failures are logged and never fail a conversion.
type Converter struct {
	inner  *subtitles.Converter
	store  *Store
	logger *slog.Logger
}

// NewConverter returns a caching converter.
func NewConverter(inner *subtitles.Converter, store *Store, logger *slog.Logger) *Converter {
	return &Converter{
		inner:  inner,
		store:  store,
		logger: logging.NewComponentLogger(logger, "trackcache"),
	}
}

// Convert returns the cached result for data when present, converting and
// storing it otherwise. The boolean reports a cache hit.
func (c *Converter) Convert(ctx context.Context, data []byte, format subtitles.Format) (*subtitles.Result, bool, error) {
	if c.store == nil {
		result, err := c.inner.Convert(data, format)
		return result, false, err
	}
	logger := logging.WithContext(ctx, c.logger)

	key := Key(data, format, c.inner.Fingerprint())
	cached, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logging.WarnWithContext(logger, "track cache read failed", "cache_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache database if this persists"),
		)
	} else if ok {
		logger.Debug("track cache hit", logging.String("key", key))
		return cached, true, nil
	}

	result, err := c.inner.Convert(data, format)
	if err != nil {
		return nil, false, err
	}
	if err := c.store.Put(ctx, key, result); err != nil {
		logging.WarnWithContext(logger, "track cache write failed", "cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check cache_dir permissions and free space"),
		)
	}
	return result, false, nil
}
