package config

import (
	"errors"
	"fmt"
	"net"

	"golang.org/x/net/html/charset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind must be host:port: %w", err)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.DefaultCueDurationMS <= 0 {
		return errors.New("subtitles.default_cue_duration_ms must be positive")
	}
	for _, label := range c.Subtitles.CandidateEncodings {
		if enc, _ := charset.Lookup(label); enc == nil {
			return fmt.Errorf("subtitles.candidate_encodings: unknown encoding %q", label)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
