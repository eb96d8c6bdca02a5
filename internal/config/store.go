package config

import "sync/atomic"

// Store holds the active configuration snapshot. Replace swaps the whole
// document at once; readers holding a snapshot from Current keep seeing the
// version they started with, never a half-updated one.
type Store struct {
	cur atomic.Pointer[Config]
}

func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.cur.Store(cfg)
	return s
}

// Current returns the active snapshot. Callers must treat it as read-only and
// must not cache it across requests.
func (s *Store) Current() *Config {
	return s.cur.Load()
}

func (s *Store) Replace(cfg *Config) {
	s.cur.Store(cfg)
}
