// Package config loads, normalizes, and validates reel configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the REEL_LIBRARY_DIR environment fallback. The
// Config type gathers the library and cache locations, the HTTP bind address,
// the subtitle decoding knobs, and log settings in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
