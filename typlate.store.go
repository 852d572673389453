package typlate

import (
	"context"
	"sort"
	"sync"
)

// Store persists raw template sources by name. It knows nothing about
// schemas; a Catalog validates what it reads back.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the source stored under name.
	// Returns an entry-not-found error if there is none.
	Get(ctx context.Context, name string) (string, error)

	// Put stores source under name, replacing any previous source.
	Put(ctx context.Context, name, source string) error

	// Delete removes the named source.
	// Returns an entry-not-found error if there is none.
	Delete(ctx context.Context, name string) error

	// List returns every stored name in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases resources. A closed store rejects further use.
	Close() error
}

// StoreDriver opens a Store from a driver-specific connection string.
type StoreDriver interface {
	Open(connectionString string) (Store, error)
}

var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver makes a driver available to OpenStore.
// Panics if driver is nil or the name is taken.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgStoreDriverExists + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store with the named driver.
//
//	store, err := typlate.OpenStore(typlate.StoreDriverFilesystem, "./templates")
//	store, err := typlate.OpenStore(typlate.StoreDriverPostgres, dsn)
func OpenStore(driver, connectionString string) (Store, error) {
	storeDriversMu.RLock()
	d, ok := storeDrivers[driver]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, NewStoreDriverNotFoundError(driver)
	}
	return d.Open(connectionString)
}

// StoreDrivers returns the registered driver names, sorted.
func StoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
