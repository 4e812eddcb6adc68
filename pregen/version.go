/*

Package pregen holds constants which are generated as part of the release process.

*/
package pregen

const (
	// Version is derived from ChangeLog.md at release time
	Version = "v0.2.0"
	// ReleaseDate likewise
	ReleaseDate = "2026-08-05"
)
