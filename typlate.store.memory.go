package typlate

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps template sources in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	sources map[string]string
	closed  bool
}

type memoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverMemory, memoryStoreDriver{})
}

// Open ignores the connection string.
func (memoryStoreDriver) Open(string) (Store, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sources: make(map[string]string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewStoreClosedError()
	}
	source, ok := s.sources[name]
	if !ok {
		return "", NewEntryNotFoundError(name)
	}
	return source, nil
}

func (s *MemoryStore) Put(ctx context.Context, name, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return NewEmptyEntryNameError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	s.sources[name] = source
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	if _, ok := s.sources[name]; !ok {
		return NewEntryNotFoundError(name)
	}
	delete(s.sources, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sources = nil
	return nil
}
