package activegroup

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStorage keeps each key in its own JSON file under dir, so another
// process (or the operator) can change the active group and have this
// process pick it up through Watch.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStorage) Read(key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (f *FileStorage) Write(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o644)
}

func (f *FileStorage) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Watch polls the key's file and emits the key whenever its modtime or
// existence changes. The channel closes when ctx is done.
func (f *FileStorage) Watch(ctx context.Context, key string, every time.Duration) <-chan string {
	events := make(chan string, 1)

	go func() {
		defer close(events)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		last, _ := f.stamp(key)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stamp, _ := f.stamp(key)
				if stamp == last {
					continue
				}
				last = stamp
				select {
				case events <- key:
				default: // an unconsumed event already signals the change
				}
			}
		}
	}()

	return events
}

func (f *FileStorage) stamp(key string) (string, error) {
	info, err := os.Stat(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return info.ModTime().String(), nil
}

// MemoryStorage is an in-process Storage for tests.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Read(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return raw, ok, nil
}

func (m *MemoryStorage) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
