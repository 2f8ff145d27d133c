package library

import (
	"context"
	"sort"
	"sync"
)

// Store is the interface for puzzle-library backends.
type Store interface {
	// Get retrieves a document by name.
	// Returns nil, nil if no document with that name exists.
	Get(ctx context.Context, name string) (*Document, error)

	// Put stores a document, replacing any existing one with the same name.
	Put(ctx context.Context, doc Document) error

	// List returns all documents sorted by name.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}

// SeedBuiltins writes the built-in documents into a store, overwriting
// entries of the same name so upgraded binaries refresh their presets.
func SeedBuiltins(ctx context.Context, s Store) error {
	for _, doc := range Builtins() {
		if err := s.Put(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// MemoryStore is an in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, nil
	}
	out := copyDocument(doc)
	return &out, nil
}

func (s *MemoryStore) Put(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[doc.Name] = copyDocument(doc)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, copyDocument(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, name)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// copyDocument clones a document so callers cannot alias the stored
// rows slice.
func copyDocument(doc Document) Document {
	out := doc
	out.Rows = append([]string(nil), doc.Rows...)
	return out
}

var _ Store = (*MemoryStore)(nil)
