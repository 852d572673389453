package typlate

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Catalog is a named set of templates sharing one schema, such as the
// messages of an application. Entries are validated when added.
type Catalog[T any] struct {
	compiler  *Compiler[T]
	templates map[string]Template[T]
	mu        sync.RWMutex
}

// NewCatalog creates an empty catalog whose entries are validated against
// schema (nil selects the default schema of T).
func NewCatalog[T any](schema *Schema[T], opts ...Option) (*Catalog[T], error) {
	compiler, err := NewCompiler(schema, opts...)
	if err != nil {
		return nil, err
	}
	return &Catalog[T]{
		compiler:  compiler,
		templates: make(map[string]Template[T]),
	}, nil
}

// Add parses source and stores it under name.
// Returns an error if the name is empty or already taken.
func (c *Catalog[T]) Add(name, source string) error {
	if name == "" {
		return NewEmptyEntryNameError()
	}
	tmpl, err := c.compiler.Parse(source)
	if err != nil {
		return withEntry(err, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.templates[name]; exists {
		return NewEntryExistsError(name)
	}
	c.templates[name] = tmpl
	c.compiler.logger.Debug(LogMsgCatalogAdded, zap.String(LogFieldEntry, name))
	return nil
}

// Get returns the template stored under name.
func (c *Catalog[T]) Get(name string) (Template[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.templates[name]
	return tmpl, ok
}

// Format renders the named template with params.
func (c *Catalog[T]) Format(name string, params T) (string, error) {
	tmpl, ok := c.Get(name)
	if !ok {
		return "", NewEntryNotFoundError(name)
	}
	return tmpl.Format(params), nil
}

// Names returns the entry names in sorted order.
func (c *Catalog[T]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedNames(c.templates)
}

// Len returns the number of entries.
func (c *Catalog[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// LoadYAML adds every entry of a flat YAML mapping of name to template text.
func (c *Catalog[T]) LoadYAML(data []byte) error {
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return NewDecodeError(FormatYAML, err)
	}
	return c.load(entries)
}

// LoadJSON adds every entry of a flat JSON object of name to template text.
func (c *Catalog[T]) LoadJSON(data []byte) error {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return NewDecodeError(FormatJSON, err)
	}
	return c.load(entries)
}

// load is all-or-nothing: every entry is parsed and checked for collisions
// before any is stored.
func (c *Catalog[T]) load(entries map[string]string) error {
	parsed, err := c.parseAll(entries)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range sortedNames(parsed) {
		if _, exists := c.templates[name]; exists {
			return NewEntryExistsError(name)
		}
	}
	for name, tmpl := range parsed {
		c.templates[name] = tmpl
	}
	c.compiler.logger.Debug(LogMsgCatalogLoaded, zap.Int(LogFieldEntries, len(parsed)))
	return nil
}

// parseAll parses entries in name order and stops at the first failure.
func (c *Catalog[T]) parseAll(entries map[string]string) (map[string]Template[T], error) {
	parsed := make(map[string]Template[T], len(entries))
	for _, name := range sortedNames(entries) {
		if name == "" {
			return nil, NewEmptyEntryNameError()
		}
		tmpl, err := c.compiler.Parse(entries[name])
		if err != nil {
			return nil, withEntry(err, name)
		}
		parsed[name] = tmpl
	}
	return parsed, nil
}

// Remove deletes the named entry and reports whether it existed.
func (c *Catalog[T]) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.templates[name]
	delete(c.templates, name)
	return ok
}

// LoadStore adds every template held by store, all-or-nothing like LoadYAML.
func (c *Catalog[T]) LoadStore(ctx context.Context, store Store) error {
	entries, err := readStore(ctx, store)
	if err != nil {
		return err
	}
	return c.load(entries)
}

// Reload replaces the whole catalog with the templates held by store.
// If any of them fails to read or parse, the current entries are kept.
func (c *Catalog[T]) Reload(ctx context.Context, store Store) error {
	entries, err := readStore(ctx, store)
	var parsed map[string]Template[T]
	if err == nil {
		parsed, err = c.parseAll(entries)
	}
	c.compiler.metrics.reloaded(err)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.templates = parsed
	c.mu.Unlock()

	c.compiler.logger.Debug(LogMsgCatalogReloaded, zap.Int(LogFieldEntries, len(parsed)))
	return nil
}

// SaveStore writes the source of every entry to store.
func (c *Catalog[T]) SaveStore(ctx context.Context, store Store) error {
	c.mu.RLock()
	sources := make(map[string]string, len(c.templates))
	for name, tmpl := range c.templates {
		sources[name] = tmpl.Source()
	}
	c.mu.RUnlock()

	for _, name := range sortedNames(sources) {
		if err := store.Put(ctx, name, sources[name]); err != nil {
			return err
		}
	}
	c.compiler.logger.Debug(LogMsgCatalogSaved, zap.Int(LogFieldEntries, len(sources)))
	return nil
}

// Watch reloads the catalog whenever a template file of store changes,
// until ctx is done. A failed reload is logged and the catalog keeps
// its previous entries.
func (c *Catalog[T]) Watch(ctx context.Context, store *FilesystemStore) error {
	logger := c.compiler.logger
	return store.Watch(ctx,
		func(name string) {
			logger.Debug(LogMsgStoreChanged, zap.String(LogFieldEntry, name))
			if err := c.Reload(ctx, store); err != nil {
				logger.Warn(LogMsgReloadFailed, zap.Error(err))
			}
		},
		func(err error) {
			logger.Warn(LogMsgWatchError, zap.Error(err))
		})
}

func readStore(ctx context.Context, store Store) (map[string]string, error) {
	names, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]string, len(names))
	for _, name := range names {
		source, err := store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		entries[name] = source
	}
	return entries, nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
