// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rtconfig provides the persisted key-value store the quality
// detector and accessibility gate use for manual overrides (§6 of the
// spec's Environment inputs), plus the schema validation helper every
// constructor-shaped entry point runs configs through (§9 design notes).
package rtconfig

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is a small persisted key-value interface. The runtime never reads
// or writes a concrete backend directly — hosts inject one, per §6's
// "must be injected, not sniffed globally" rule.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MapStore is an in-memory Store, useful for tests and for hosts with no
// persistence requirement.
type MapStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMapStore creates an empty MapStore.
func NewMapStore() *MapStore {

	return &MapStore{values: make(map[string]string)}
}

func (m *MapStore) Get(key string) (string, bool) {

	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MapStore) Set(key, value string) {

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MapStore) Delete(key string) {

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// YAMLFileStore persists overrides to a YAML file on disk, loaded eagerly
// and flushed on every Set/Delete. It is the concrete store a host
// application wires up so that a manually forced quality tier or motion
// policy survives across process restarts of the *host* — the runtime
// instance itself remains process-scoped per the spec's non-goals.
type YAMLFileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewYAMLFileStore loads (or creates) a YAML-backed store at path.
func NewYAMLFileStore(path string) (*YAMLFileStore, error) {

	s := &YAMLFileStore{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("rtconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("rtconfig: parsing %s: %w", path, err)
	}
	return s, nil
}

func (s *YAMLFileStore) Get(key string) (string, bool) {

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *YAMLFileStore) Set(key, value string) {

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.flushLocked()
}

func (s *YAMLFileStore) Delete(key string) {

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.flushLocked()
}

func (s *YAMLFileStore) flushLocked() {

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o644)
}
