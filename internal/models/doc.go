// Package models defines the domain entities exchanged with the movie API and persisted in the local session store.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): records decoded from API responses
//   - [User] : Profile with display name, [Role] and avatar reference
//   - [Subscription] : Plan tier, status and start/end timestamps
//   - [Movie] : Canonical movie record with defaults applied at construction
//   - [WishlistResponse] : Either a bare movie list or a {movies: [...]} envelope
//   - [PushMessage] : Background notification payload relayed by the notify bridge
//
// 2. Persistent Entities: database-backed records
//   - [SessionEntry] : Key-value pair holding the auth token, cached plan or cached user
//
// Persistent entities implement the [Model] interface and are stored through a [Repository].
package models
