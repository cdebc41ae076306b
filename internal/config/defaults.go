package config

const (
	defaultConfigPath    = "~/.config/reel/config.toml"
	defaultLibraryDir    = "~/Videos"
	defaultLogDir        = "~/.local/share/reel/logs"
	defaultBind          = "127.0.0.1:10001"
	defaultAllowOrigin   = "*"
	defaultCacheMaxAge   = 3600
	defaultCueDurationMS = 3000
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	libraryDirEnv        = "REEL_LIBRARY_DIR"
)

// defaultCandidateEncodings mirrors the converter defaults: Korean legacy
// code pages first, then the Unicode forms.
var defaultCandidateEncodings = []string{"euc-kr", "windows-949", "utf-8", "utf-16le"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			CacheDir:   defaultCacheDir(),
			LogDir:     defaultLogDir,
		},
		Server: Server{
			Bind:        defaultBind,
			AllowOrigin: defaultAllowOrigin,
			CacheMaxAge: defaultCacheMaxAge,
		},
		Subtitles: Subtitles{
			CandidateEncodings:   append([]string(nil), defaultCandidateEncodings...),
			DefaultCueDurationMS: defaultCueDurationMS,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
