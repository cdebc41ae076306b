package trackcache_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"reel/internal/subtitles"
	"reel/internal/testsupport"
	"reel/internal/trackcache"
)

const samiDoc = `<SAMI><BODY><SYNC Start=1000><P Class=KRCC><font color="red">Hi</font></P></BODY></SAMI>`

func openStore(t *testing.T) *trackcache.Store {
	t.Helper()
	store, err := trackcache.OpenPath(filepath.Join(t.TempDir(), "cache", "tracks.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestKeyDependsOnBytesFormatAndOptions(t *testing.T) {
	a := trackcache.Key([]byte("same"), subtitles.FormatSRT, "f1")
	cases := []string{
		trackcache.Key([]byte("same"), subtitles.FormatVTT, "f1"),
		trackcache.Key([]byte("other"), subtitles.FormatSRT, "f1"),
		trackcache.Key([]byte("same"), subtitles.FormatSRT, "f2"),
	}
	for _, other := range cases {
		if a == other {
			t.Fatalf("expected distinct keys, both %q", a)
		}
	}
	if a != trackcache.Key([]byte("same"), subtitles.FormatSRT, "f1") {
		t.Fatal("expected key to be deterministic")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	result, err := subtitles.Convert([]byte(samiDoc), subtitles.FormatSAMI)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	key := trackcache.Key([]byte(samiDoc), subtitles.FormatSAMI, "")

	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss before put, got ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, key, result); err != nil {
		t.Fatalf("Put: %v", err)
	}
	cached, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if cached.Document() != result.Document() {
		t.Fatalf("cached document differs:\n%q\n%q", cached.Document(), result.Document())
	}
	if len(cached.Colors) != 1 || cached.Colors[0].Class != "color1" {
		t.Fatalf("unexpected cached colors: %+v", cached.Colors)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Entries != 1 || stats.Hits != 1 || stats.Formats["sami"] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	removed, err := store.Clear(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("Clear = %d, %v", removed, err)
	}
	if _, ok, _ := store.Get(ctx, key); ok {
		t.Fatal("expected miss after clear")
	}
}

func TestPutRejectsNilResult(t *testing.T) {
	store := openStore(t)
	if err := store.Put(context.Background(), "k", nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.db")
	store, err := trackcache.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := trackcache.OpenPath(path); !errors.Is(err, trackcache.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestConverterUsesCache(t *testing.T) {
	store := openStore(t)
	converter := trackcache.NewConverter(subtitles.NewConverter(subtitles.Options{}, nil), store, nil)
	ctx := context.Background()

	first, hit, err := converter.Convert(ctx, []byte(samiDoc), subtitles.FormatSAMI)
	if err != nil || hit {
		t.Fatalf("first convert: hit=%v err=%v", hit, err)
	}
	second, hit, err := converter.Convert(ctx, []byte(samiDoc), subtitles.FormatSAMI)
	if err != nil || !hit {
		t.Fatalf("second convert: hit=%v err=%v", hit, err)
	}
	if first.Document() != second.Document() {
		t.Fatal("cached conversion should match the first one")
	}
}

func TestConverterWithoutStore(t *testing.T) {
	converter := trackcache.NewConverter(subtitles.NewConverter(subtitles.Options{}, nil), nil, nil)
	_, hit, err := converter.Convert(context.Background(), []byte("x"), subtitles.Format("ass"))
	if hit || !errors.Is(err, subtitles.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error without cache, got hit=%v err=%v", hit, err)
	}
}

func TestOpenUsesConfiguredCachePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := trackcache.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if store.Path() != cfg.CachePath() {
		t.Fatalf("expected %s, got %s", cfg.CachePath(), store.Path())
	}
}

func TestConverterMissesWhenOptionsChange(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	short := trackcache.NewConverter(subtitles.NewConverter(subtitles.Options{CueDuration: 500 * time.Millisecond}, nil), store, nil)
	first, _, err := short.Convert(ctx, []byte(samiDoc), subtitles.FormatSAMI)
	if err != nil {
		t.Fatalf("first convert: %v", err)
	}

	long := trackcache.NewConverter(subtitles.NewConverter(subtitles.Options{CueDuration: 4 * time.Second}, nil), store, nil)
	second, hit, err := long.Convert(ctx, []byte(samiDoc), subtitles.FormatSAMI)
	if err != nil || hit {
		t.Fatalf("expected a miss after changing cue duration, hit=%v err=%v", hit, err)
	}
	if first.Entries[0].EndMS != 1500 || second.Entries[0].EndMS != 5000 {
		t.Fatalf("unexpected end times %d and %d", first.Entries[0].EndMS, second.Entries[0].EndMS)
	}

	if _, hit, err := short.Convert(ctx, []byte(samiDoc), subtitles.FormatSAMI); err != nil || !hit {
		t.Fatalf("expected the first options to still hit, hit=%v err=%v", hit, err)
	}
}
