// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import (
	"fmt"
	"sync"
	"testing"
)

// TestConcurrentModelReads tests that multiple Get operations can run
// concurrently with mapping
func TestConcurrentModelReads(t *testing.T) {
	m := NewModel("concurrent")
	m.Map(map[string]any{"counter": 0, "label": "x"})

	const readers = 16
	const writes = 50

	var wg sync.WaitGroup

	// Writers replace storage wholesale
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			m.Map(map[string]any{"counter": i, "label": "x"})
		}
	}()

	// Readers must always observe a consistent whole-map snapshot:
	// "label" was present in every mapped generation, so it can never
	// be missing
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				if got := m.Get("label").String(); got != "x" {
					t.Errorf("Expected consistent snapshot, got label %q", got)
					return
				}
				_ = m.Get("counter").Int()
			}
		}()
	}

	wg.Wait()
}

// TestConcurrentModelWrites tests that Set operations are serialized
func TestConcurrentModelWrites(t *testing.T) {
	m := NewModel("writes")

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				m.Set(fmt.Sprintf("key%d_%d", id, i), i)
			}
		}(w)
	}
	wg.Wait()

	if got := len(m.AllKeys()); got != writers*perWriter {
		t.Errorf("Expected %d keys, got %d", writers*perWriter, got)
	}
}

// TestConcurrentRegistryOperations tests mixed registry access from many
// goroutines
func TestConcurrentRegistryOperations(t *testing.T) {
	reg := NewRegistry(CachePolicy(PolicyUntilProcessExit))

	const goroutines = 16
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			name := fmt.Sprintf("model%d", id%4)
			m := reg.InstanceFor(name)
			m.Map(map[string]any{"id": id})
			_ = m.Get("id").Int()
			_ = reg.Names()
		}(g)
	}
	wg.Wait()

	if got := len(reg.Names()); got != 4 {
		t.Errorf("Expected 4 distinct models, got %d: %v", got, reg.Names())
	}
}

// TestConcurrentCachePersist tests that persistence does not interleave
// partial writes
func TestConcurrentCachePersist(t *testing.T) {
	store := NewMemoryStore()
	reg := NewRegistry(
		CachePolicy(PolicyUntilNextWrite),
		WithStore(store),
	)
	m := reg.InstanceFor("user")

	const writers = 8
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			m.Map(map[string]any{"generation": id, "label": "x"})
		}(w)
	}
	wg.Wait()

	// Whatever generation won, the persisted entry must be one complete
	// snapshot containing both fields
	restored := NewRegistry(
		CachePolicy(PolicyUntilNextWrite),
		WithStore(store),
	).InstanceFor("user")

	if got := restored.Get("label").String(); got != "x" {
		t.Errorf("Expected complete persisted snapshot, got label %q", got)
	}
	if !restored.Get("generation").Exists() {
		t.Errorf("Expected persisted generation field")
	}
}
