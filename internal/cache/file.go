package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"strconv"
	"time"

	"github.com/mrz1836/cyclic/internal/fileutil"
)

const (
	// FileName is the property cache file name inside the home directory.
	FileName = "properties.json"

	// fileVersion is the schema version written by Save.
	fileVersion = 1

	filePerm = 0o640
	dirPerm  = 0o750
)

var (
	// ErrCorruptCache indicates the cache file is not valid JSON.
	ErrCorruptCache = errors.New("cache file is corrupted")

	// ErrCacheVersion indicates the cache file was written by a newer schema.
	ErrCacheVersion = errors.New("unsupported cache file version")
)

// fileImage is the on-disk layout of a PropertyCache. Files written before
// versioning carry no version field and read as version 0.
type fileImage struct {
	Version int                      `json:"version"`
	Entries map[string]PropertyEntry `json:"entries"`
}

// FileStorage persists a PropertyCache as a JSON file.
type FileStorage struct {
	path string
}

// NewFileStorage returns storage backed by the file at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the cache file path.
func (s *FileStorage) Path() string { return s.path }

// Exists reports whether the cache file is present.
func (s *FileStorage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes a snapshot of cache atomically, creating the directory if
// needed.
func (s *FileStorage) Save(cache *PropertyCache) error {
	img := fileImage{Version: fileVersion, Entries: cache.snapshot()}
	data, err := json.MarshalIndent(img, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}
	if err := fileutil.WriteAtomicMkdir(s.path, data, filePerm, dirPerm); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Load reads the cache file. A missing file yields an empty cache. A
// malformed file is renamed to <path>.corrupt.<nanos> and an empty cache is
// returned with ErrCorruptCache. A file from a newer schema is left alone
// and an empty cache is returned with ErrCacheVersion.
func (s *FileStorage) Load() (*PropertyCache, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return NewPropertyCache(), nil
	case err != nil:
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var img fileImage
	if err := json.Unmarshal(data, &img); err != nil {
		return NewPropertyCache(), s.quarantine(err)
	}
	if img.Version > fileVersion {
		return NewPropertyCache(), fmt.Errorf("%w: %d", ErrCacheVersion, img.Version)
	}

	cache := NewPropertyCache()
	maps.Copy(cache.entries, img.Entries)
	return cache, nil
}

// Delete removes the cache file. A missing file is not an error.
func (s *FileStorage) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cache file: %w", err)
	}
	return nil
}

func (s *FileStorage) quarantine(cause error) error {
	aside := s.path + ".corrupt." + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("%w: %w (also failed to move file: %w)", ErrCorruptCache, cause, err)
	}
	return fmt.Errorf("%w: %w (moved to %s)", ErrCorruptCache, cause, aside)
}
