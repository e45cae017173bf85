package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/rentcore/rentcore/internal/seed"
	"github.com/rentcore/rentcore/internal/types"
)

// Snapshot is the full application state as held by the session controller.
type Snapshot struct {
	Cities        []types.CityConfig
	Neighborhoods []string
	Properties    []types.Property
	Users         []types.User
	SessionUser   *types.User
	Chats         []types.Chat
	Contracts     []types.Contract
	Favorites     map[string][]string
}

type Store struct {
	log     *log.Logger
	backend Backend
}

func NewStore(logger *log.Logger, backend Backend) *Store {
	return &Store{log: logger, backend: backend}
}

// read unmarshals the blob for key into v. Returns ErrNotFound when no blob
// exists.
func (s *Store) read(key string, v any) error {
	data, err := s.backend.Read(key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}

	return nil
}

// Load reads every collection from the backend. A missing or unreadable key
// falls back to its seed value; failures are isolated per key and logged,
// never fatal.
func (s *Store) Load() *Snapshot {
	snap := &Snapshot{
		Chats:     []types.Chat{},
		Favorites: make(map[string][]string),
	}

	if err := s.read(KeyActiveCities, &snap.Cities); err != nil {
		s.logFallback(KeyActiveCities, err)
		snap.Cities = seed.Cities()
	}
	if err := s.read(KeyNeighborhoods, &snap.Neighborhoods); err != nil {
		s.logFallback(KeyNeighborhoods, err)
		snap.Neighborhoods = seed.Neighborhoods()
	}
	if err := s.read(KeyProperties, &snap.Properties); err != nil {
		s.logFallback(KeyProperties, err)
		snap.Properties = seed.Properties()
	}
	if err := s.read(KeyUsers, &snap.Users); err != nil {
		s.logFallback(KeyUsers, err)
		snap.Users = seed.Users()
	}
	if err := s.read(KeySessionUser, &snap.SessionUser); err != nil {
		// no session is the normal first-run state
		if !errors.Is(err, ErrNotFound) {
			s.logFallback(KeySessionUser, err)
		}
		snap.SessionUser = nil
	}
	if err := s.read(KeyChats, &snap.Chats); err != nil {
		s.logFallback(KeyChats, err)
		snap.Chats = []types.Chat{}
	}
	if err := s.read(KeyContracts, &snap.Contracts); err != nil {
		s.logFallback(KeyContracts, err)
		snap.Contracts = seed.Contracts()
	}
	if err := s.read(KeyFavorites, &snap.Favorites); err != nil {
		s.logFallback(KeyFavorites, err)
		snap.Favorites = make(map[string][]string)
	}

	return snap
}

func (s *Store) logFallback(key string, err error) {
	if errors.Is(err, ErrNotFound) {
		s.log.Printf("no snapshot for %s, using seed data", key)
		return
	}
	s.log.Printf("load %s: %v, falling back to seed data", key, err)
}

// Persist writes every collection as one batch. An empty property list and a
// nil session user are skipped so an empty initial state never clobbers seed
// data.
func (s *Store) Persist(snap *Snapshot) error {
	batch := make(map[string][]byte, 8)

	add := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		batch[key] = data
		return nil
	}

	collections := []struct {
		key string
		v   any
	}{
		{KeyActiveCities, snap.Cities},
		{KeyNeighborhoods, snap.Neighborhoods},
		{KeyUsers, snap.Users},
		{KeyChats, snap.Chats},
		{KeyContracts, snap.Contracts},
		{KeyFavorites, snap.Favorites},
	}
	for _, c := range collections {
		if err := add(c.key, c.v); err != nil {
			return err
		}
	}

	if len(snap.Properties) > 0 {
		if err := add(KeyProperties, snap.Properties); err != nil {
			return err
		}
	}
	if snap.SessionUser != nil {
		if err := add(KeySessionUser, snap.SessionUser); err != nil {
			return err
		}
	}

	if err := s.backend.WriteBatch(batch); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	return nil
}

// ClearSession removes the persisted session user.
func (s *Store) ClearSession() error {
	if err := s.backend.Delete(KeySessionUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Ping() error {
	return s.backend.Ping()
}
