// Package repositories implements SQLite persistence for the song catalog.
//
// The catalog is read-mostly: `spindle setup` imports the CSV sources once
// via [ImportCatalog], and every later start can load the catalog through
// [SQLiteSource] without touching the CSV files.
//
// Key Implementations:
//   - [SongRepository] : songs table access, genres packed into one TEXT column
//   - [ArtistRepository] : artists table access
//   - [SQLiteSource] : adapts both repositories into a catalog.Source
//
// Row ids are the stable catalog ids the engine and the HTTP API expose, so
// inserts write them explicitly instead of relying on SQLite rowid
// assignment. Imports run in a single transaction and replace the previous
// catalog wholesale; there is no partial update path.
package repositories
