package typlate

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FilesystemStore keeps one file per template under a root directory.
//
// Directory structure:
//
//	<root>/
//	  greeting.typlate
//	  farewell.typlate
//
// File content is the raw template source.
type FilesystemStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

type filesystemStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverFilesystem, filesystemStoreDriver{})
}

// Open treats the connection string as the root directory.
func (filesystemStoreDriver) Open(connectionString string) (Store, error) {
	return NewFilesystemStore(connectionString)
}

// NewFilesystemStore opens a store rooted at root, creating the directory if needed.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, NewStoreError(ErrMsgEmptyStoreRoot, nil)
	}
	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, withPath(NewStoreError(ErrMsgStoreFailed, err), root)
	}
	return &FilesystemStore{root: root}, nil
}

// Root returns the store directory.
func (s *FilesystemStore) Root() string {
	return s.root
}

func (s *FilesystemStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateEntryNameForFilesystem(name); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewStoreClosedError()
	}
	data, err := os.ReadFile(s.entryPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", NewEntryNotFoundError(name)
	}
	if err != nil {
		return "", withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	return string(data), nil
}

// Put writes through a temporary file and a rename, so readers and
// watchers never observe a partial template.
func (s *FilesystemStore) Put(ctx context.Context, name, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateEntryNameForFilesystem(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	tmp, err := os.CreateTemp(s.root, "."+name+"-*.tmp")
	if err != nil {
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.WriteString(source)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	if err := os.Chmod(tmpName, FilesystemFilePermissions); err != nil {
		_ = os.Remove(tmpName)
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	if err := os.Rename(tmpName, s.entryPath(name)); err != nil {
		_ = os.Remove(tmpName)
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	return nil
}

func (s *FilesystemStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateEntryNameForFilesystem(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	err := os.Remove(s.entryPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return NewEntryNotFoundError(name)
	}
	if err != nil {
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	return nil
}

func (s *FilesystemStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, withPath(NewStoreError(ErrMsgStoreFailed, err), s.root)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := entryNameFromFile(entry.Name()); ok && !entry.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Watch calls onChange with the entry name whenever a template file is
// created, written, removed or renamed. It returns once the watcher is
// running; watching stops when ctx is done.
func (s *FilesystemStore) Watch(ctx context.Context, onChange func(name string), onError func(err error)) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return NewStoreClosedError()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return withPath(NewStoreError(ErrMsgWatchFailed, err), s.root)
	}
	if err := watcher.Add(s.root); err != nil {
		watcher.Close()
		return withPath(NewStoreError(ErrMsgWatchFailed, err), s.root)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if name, ok := entryNameFromFile(filepath.Base(event.Name)); ok {
					onChange(name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(NewStoreError(ErrMsgWatchFailed, err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (s *FilesystemStore) entryPath(name string) string {
	return filepath.Join(s.root, name+FilesystemEntrySuffix)
}

// entryNameFromFile maps a directory entry back to a template name.
// Hidden files, including in-flight temporaries, are skipped.
func entryNameFromFile(file string) (string, bool) {
	if strings.HasPrefix(file, ".") || !strings.HasSuffix(file, FilesystemEntrySuffix) {
		return "", false
	}
	name := strings.TrimSuffix(file, FilesystemEntrySuffix)
	return name, name != ""
}

func validateEntryNameForFilesystem(name string) error {
	if name == "" {
		return NewEmptyEntryNameError()
	}
	if strings.HasPrefix(name, ".") ||
		strings.Contains(name, FilesystemPathTraversal) ||
		strings.ContainsAny(name, FilesystemInvalidChars) {
		return NewInvalidEntryNameError(name)
	}
	return nil
}
