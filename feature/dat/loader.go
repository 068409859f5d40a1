package dat

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedIndex pairs a built index with the file state it was built from.
type cachedIndex struct {
	index   *Index
	result  *ParseResult
	modTime time.Time
}

// Loader builds and caches indices per DAT path. A cached index is reused
// until the file's modification time changes; concurrent callers for the
// same path share one build through singleflight.
type Loader struct {
	mu      sync.RWMutex
	indices map[string]*cachedIndex
	sf      singleflight.Group
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{indices: make(map[string]*cachedIndex)}
}

// Load returns the index for the given DAT path, building it on first use
// or when the file changed on disk.
func (l *Loader) Load(path string, kind SourceKind) (*Index, *ParseResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat dat file: %w", err)
	}

	l.mu.RLock()
	cached, ok := l.indices[path]
	l.mu.RUnlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.index, cached.result, nil
	}

	built, err, _ := l.sf.Do(path, func() (any, error) {
		// Re-check after winning the singleflight slot.
		l.mu.RLock()
		cached, ok := l.indices[path]
		l.mu.RUnlock()
		if ok && cached.modTime.Equal(info.ModTime()) {
			return cached, nil
		}

		result, err := ParseFile(path, kind)
		if err != nil {
			return nil, err
		}
		fresh := &cachedIndex{
			index:   BuildIndex(result.Records),
			result:  result,
			modTime: info.ModTime(),
		}

		l.mu.Lock()
		l.indices[path] = fresh
		l.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, nil, err
	}

	entry := built.(*cachedIndex)
	return entry.index, entry.result, nil
}

// Invalidate drops the cached index for a path, forcing a rebuild.
func (l *Loader) Invalidate(path string) {
	l.mu.Lock()
	delete(l.indices, path)
	l.mu.Unlock()
}
