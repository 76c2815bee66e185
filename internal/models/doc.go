// Package models defines domain value types for the spindle recommendation service.
//
// The package contains two categories of types:
//
// 1. Catalog entities, owned by the catalog store and immutable after load:
//   - [Song] : Full catalog entry with genres and file references
//   - [Artist] : Catalog artist with a free-text description
//   - [SimpleSong], [SimpleArtist] : Reduced shapes returned by search
//
// 2. Request-scoped values, constructed per call and never mutated:
//   - [Preferences] : A user's favorite genres and artists
//   - [Activity] : One unit of normalized external-platform listening history
//   - [SongType] : The closed filter enumeration for recommendation results
//
// Optional song attributes (external id, cover art, ISRC, preview and
// download URLs) are pointer-typed so an absent value survives the round trip
// through JSON and the sqlite catalog source.
package models
