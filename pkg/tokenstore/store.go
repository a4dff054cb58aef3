// Package tokenstore persists OAuth2 tokens between runs, keyed by an
// application-chosen name such as the Freesound username.
package tokenstore

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// Store defines the persistence layer for OAuth2 tokens.
type Store interface {
	// Save inserts or replaces the token stored under key.
	Save(ctx context.Context, key string, tok *oauth2.Token) error

	// Get returns the token stored under key, or nil if there is none.
	Get(ctx context.Context, key string) (*oauth2.Token, error)

	// Delete removes the token stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

// Scope returns the scope recorded on tok, or "".
func Scope(tok *oauth2.Token) string {
	if tok == nil {
		return ""
	}
	s, _ := tok.Extra("scope").(string)
	return s
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]oauth2.Token
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]oauth2.Token)}
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, key string, tok *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[key] = *tok
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tok, ok := m.tokens[key]
	if !ok {
		return nil, nil
	}
	return &tok, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}
