package trackcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reel/internal/subtitles"
)

// Key derives the cache key for raw subtitle bytes in the given format,
// converted with options identified by fingerprint (see
// subtitles.Converter.Fingerprint).
func Key(data []byte, format subtitles.Format, fingerprint string) string {
	sum := sha256.Sum256(data)
	return string(format) + ":" + fingerprint + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for key. A miss is reported as (nil, false, nil).
func (s *Store) Get(ctx context.Context, key string) (*subtitles.Result, bool, error) {
	ctx = ensureContext(ctx)
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT result_json FROM tracks WHERE cache_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cached track: %w", err)
	}

	var result subtitles.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, false, fmt.Errorf("decode cached track: %w", err)
	}

	if _, err := s.execWithRetry(ctx,
		"UPDATE tracks SET hits = hits + 1, last_hit_at = ? WHERE cache_key = ?",
		time.Now().UTC().Format(time.RFC3339Nano), key,
	); err != nil {
		return nil, false, fmt.Errorf("record cache hit: %w", err)
	}
	return &result, true, nil
}

// Put stores result under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, result *subtitles.Result) error {
	if result == nil {
		return errors.New("put cached track: nil result")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode cached track: %w", err)
	}
	_, err = s.execWithRetry(ensureContext(ctx), `INSERT INTO tracks
		(cache_key, format, encoding, cue_count, color_count, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			format = excluded.format,
			encoding = excluded.encoding,
			cue_count = excluded.cue_count,
			color_count = excluded.color_count,
			result_json = excluded.result_json,
			created_at = excluded.created_at`,
		key,
		string(result.Format),
		result.Encoding,
		len(result.Entries),
		len(result.Colors),
		string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store cached track: %w", err)
	}
	return nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int            `json:"entries"`
	Hits    int64          `json:"hits"`
	Formats map[string]int `json:"formats"`
}

// Stats reports entry and hit counts grouped by format.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	stats := Stats{Formats: make(map[string]int)}
	rows, err := s.db.QueryContext(ctx, "SELECT format, COUNT(1), COALESCE(SUM(hits), 0) FROM tracks GROUP BY format")
	if err != nil {
		return stats, fmt.Errorf("query cache stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			format string
			count  int
			hits   int64
		)
		if err := rows.Scan(&format, &count, &hits); err != nil {
			return stats, fmt.Errorf("scan cache stats: %w", err)
		}
		stats.Formats[format] = count
		stats.Entries += count
		stats.Hits += hits
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes every cached track and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM tracks")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared tracks: %w", err)
	}
	return removed, nil
}
