package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"cedar/internal/diag"
	"cedar/internal/source"
)

// Current schema version - increment when CachePayload format changes.
const cacheSchemaVersion uint16 = 1

// CacheKey identifies one (file content, target triple) combination.
type CacheKey uint64

// Key hashes the file content together with the target triple. Layout rules
// depend on the target, so the same file checked for another target must not
// hit the same entry.
func Key(content []byte, triple string) CacheKey {
	h := xxhash.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(triple)
	return CacheKey(h.Sum64())
}

// CachedNote mirrors diag.Note with offsets only. The FileID is rebound on
// restore because IDs are per-FileSet.
type CachedNote struct {
	Msg   string
	Start uint32
	End   uint32
}

// CachedDiagnostic mirrors diag.Diagnostic for serialization.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// CachePayload stores the diagnostics of one checked file for fast re-runs.
type CachePayload struct {
	Schema uint16
	Triple string
	Diags  []CachedDiagnostic
}

// payloadFromBag converts a bag into its serializable form.
// Тайминги не кэшируем: они описывают конкретный запуск.
func payloadFromBag(bag *diag.Bag, triple string) *CachePayload {
	payload := &CachePayload{
		Schema: cacheSchemaVersion,
		Triple: triple,
	}
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cached := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cached.Notes = append(cached.Notes, CachedNote{
				Msg:   n.Msg,
				Start: n.Span.Start,
				End:   n.Span.End,
			})
		}
		payload.Diags = append(payload.Diags, cached)
	}
	return payload
}

// restoreDiags replays cached diagnostics into a bag, rebinding spans to the
// freshly loaded file.
func restoreDiags(bag *diag.Bag, file source.FileID, payload *CachePayload) {
	for _, cached := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cached.Severity),
			Code:     diag.Code(cached.Code),
			Message:  cached.Message,
			Primary:  source.Span{File: file, Start: cached.Start, End: cached.End},
		}
		for _, n := range cached.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		bag.Add(d)
	}
}

// DiskCache хранит результаты проверки по ключу содержимого на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
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
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key CacheKey) string {
	// Для удобства читаемости/очистки — подкаталог "files".
	return filepath.Join(c.dir, "files", fmt.Sprintf("%016x.mp", uint64(key)))
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachePayload) error {
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
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return nil
}

// Get reads and deserializes a payload from the disk cache. A missing entry,
// a stale schema, or a different target triple all count as a miss.
func (c *DiskCache) Get(key CacheKey, triple string, out *CachePayload) (bool, error) {
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
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion || out.Triple != triple {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
