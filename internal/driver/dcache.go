package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sled/internal/source"
)

// Current schema version - increment when CachePayload format changes
const directiveCacheSchemaVersion uint16 = 1

// Digest identifies file content, sha256 от нормализованного содержимого.
type Digest = [32]byte

// DirectiveCache хранит директивы прочитанных файлов на диске, с ключом по
// хешу содержимого: неизменённый файл можно не перечитывать.
// Thread-safe for concurrent access.
type DirectiveCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDirective is one directive as stored on disk. Spans are not cached;
// line numbers are enough to point back into the file.
type CachedDirective struct {
	Line     uint32
	Rendered string
}

// CachePayload stores the per-file cache entry.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path       string
	Hash       Digest
	Directives []CachedDirective
}

// OpenDirectiveCache initializes and returns a cache at the standard location.
func OpenDirectiveCache(app string) (*DirectiveCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirectiveCache{dir: dir}, nil
}

// OpenDirectiveCacheAt opens a cache rooted at an explicit directory (tests).
func OpenDirectiveCacheAt(dir string) (*DirectiveCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirectiveCache{dir: dir}, nil
}

func (c *DirectiveCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки - подкаталог "dirs".
	return filepath.Join(c.dir, "dirs", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DirectiveCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err = os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Возвращает false без ошибки, если записи нет или схема устарела.
func (c *DirectiveCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != directiveCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DirectiveCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// resultToPayload converts a scan result to its cache entry.
func resultToPayload(fileSet *source.FileSet, result *Result) *CachePayload {
	if result == nil {
		return nil
	}
	file := fileSet.Get(result.FileID)
	payload := &CachePayload{
		Schema: directiveCacheSchemaVersion,
		Path:   result.Path,
		Hash:   file.Hash,
	}
	payload.Directives = make([]CachedDirective, len(result.Directives))
	for i, d := range result.Directives {
		start, _ := fileSet.Resolve(d.Span)
		payload.Directives[i] = CachedDirective{
			Line:     start.Line,
			Rendered: d.String(),
		}
	}
	return payload
}

// StoreResult writes the directives of a completed scan into the cache.
func (c *DirectiveCache) StoreResult(fileSet *source.FileSet, result *Result) error {
	payload := resultToPayload(fileSet, result)
	if payload == nil {
		return nil
	}
	return c.Put(payload.Hash, payload)
}

// LookupFile returns the cached directives for a file's current content.
func (c *DirectiveCache) LookupFile(path string) (*CachePayload, bool, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return nil, false, err
	}
	key := source.HashContent(content)
	var payload CachePayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return nil, false, err
	}
	return &payload, true, nil
}
