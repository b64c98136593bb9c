package watch

import (
	"crypto/md5"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// digestCache remembers content digests of recently seen files so
// events that do not change a file's content are ignored.
type digestCache struct {
	sync.Mutex
	cache *lru.Cache
}

func newDigestCache(n int) (*digestCache, error) {
	var err error
	dc := &digestCache{}
	if dc.cache, err = lru.New(n); err != nil {
		return nil, err
	}

	return dc, nil
}

// Changed reports whether path's content differs from the last digest
// seen for it, recording the new digest. Unreadable files count as
// changed; the next successful read re-seeds the cache.
func (dc *digestCache) Changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		dc.Lock()
		dc.cache.Remove(path)
		dc.Unlock()
		return true
	}

	sum := md5.Sum(data)

	dc.Lock()
	defer dc.Unlock()

	prev, exists := dc.cache.Get(path)
	dc.cache.Add(path, sum)

	if !exists {
		return true
	}

	return prev.([16]byte) != sum
}
