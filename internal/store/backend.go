// Package store persists the application state as whole-collection JSON
// snapshots behind a swappable backend. The contract is last write wins:
// every persist replaces each collection blob in full.
package store

import "errors"

// Storage keys, one per collection.
const (
	KeyActiveCities  = "rentcore_active_cities"
	KeyNeighborhoods = "rentcore_neighborhoods"
	KeyProperties    = "rentcore_properties"
	KeyUsers         = "rentcore_all_users"
	KeySessionUser   = "rentcore_user"
	KeyChats         = "rentcore_chats"
	KeyContracts     = "rentcore_contracts"
	KeyFavorites     = "rentcore_user_favorites"
)

// ErrNotFound is returned by Backend.Read when no blob exists for a key.
var ErrNotFound = errors.New("key not found")

type Backend interface {
	Read(key string) ([]byte, error)
	WriteBatch(batch map[string][]byte) error
	Delete(key string) error
	Ping() error
	Close() error
}
