// Package trackcache persists converted WebVTT tracks in SQLite so repeated
// requests for the same subtitle file skip decoding and conversion.
//
// Entries are keyed by the SHA-256 of the raw input bytes plus the input
// format, which makes the cache immune to renames and invalidates itself when
// a file changes. The database is disposable: schema changes bump the version
// in schema.go and users delete the file to adopt the new schema.
package trackcache
