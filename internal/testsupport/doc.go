// Package testsupport builds temporary configurations and media libraries
// for tests.
package testsupport
