package config

import (
	"sync"
	"testing"
)

func TestStoreReplaceIsAtomic(t *testing.T) {
	first := &Config{AdminUsers: []string{"@a:x"}}
	second := &Config{AdminUsers: []string{"@b:x"}}

	store := NewStore(first)
	if store.Current() != first {
		t.Fatalf("Current() should return the initial snapshot")
	}

	snapshot := store.Current()
	store.Replace(second)

	// A request that started before the swap keeps its snapshot.
	if !snapshot.IsAdmin("@a:x") {
		t.Fatalf("held snapshot changed under the reader")
	}
	if !store.Current().IsAdmin("@b:x") {
		t.Fatalf("new readers should see the replacement")
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore(&Config{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if j%10 == 0 {
					store.Replace(&Config{AdminUsers: []string{"@x:y"}})
				}
				cfg := store.Current()
				if cfg == nil {
					t.Error("Current() returned nil")
					return
				}
				_ = cfg.IsAdmin("@x:y")
			}
		}()
	}
	wg.Wait()
}
