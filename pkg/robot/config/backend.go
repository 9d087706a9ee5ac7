package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
)

// Backend stores one record.
type Backend interface {
	Load() ([]byte, error)
	Save([]byte) error
}

// FileBackend keeps the record in a file.
type FileBackend struct {
	Path string
}

// Load implements Backend. A missing file is ErrNoRecord.
func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoRecord
	}
	return data, err
}

// Save implements Backend, replacing the file atomically.
func (b *FileBackend) Save(data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(b.Path), filepath.Base(b.Path)+".*")
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(f.Name(), b.Path)
	}
	if err != nil {
		os.Remove(f.Name())
	}
	return err
}

// MemoryBackend keeps the record in memory.
type MemoryBackend struct {
	lock sync.Mutex
	data []byte
}

// Load implements Backend.
func (b *MemoryBackend) Load() ([]byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.data == nil {
		return nil, ErrNoRecord
	}
	return append([]byte(nil), b.data...), nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(data []byte) error {
	b.lock.Lock()
	b.data = append([]byte(nil), data...)
	b.lock.Unlock()
	return nil
}

// SaveSignal requests saving from any goroutine. Pending requests coalesce.
type SaveSignal chan struct{}

// NewSaveSignal creates a SaveSignal.
func NewSaveSignal() SaveSignal {
	return make(SaveSignal, 1)
}

// Signal requests a save.
func (s SaveSignal) Signal() {
	select {
	case s <- struct{}{}:
	default:
	}
}

// Run calls save for every request until ctx is done.
// Failures are logged and the loop continues.
func (s SaveSignal) Run(ctx context.Context, save func() error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s:
			if err := save(); err != nil {
				glog.Errorf("couldn't save config: %v", err)
			}
		}
	}
}
