package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"
)

// PageCache provides thread-safe caching of decoded page images to avoid
// redundant disk reads when the same page is processed more than once
// (e.g. geometry pass plus overlay rendering).
//
// Cached images stay in memory for the cache's lifetime. Documents run to
// dozens of pages at 300 DPI, so callers scope one cache per document run
// and let it go out of scope with the document.
type PageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewPageCache creates an empty page cache ready for concurrent use.
func NewPageCache() *PageCache {
	return &PageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image for path, reading from disk on a cache miss.
// The cache key is the exact path string, so relative and absolute paths to
// the same file occupy separate entries.
func (c *PageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

var pageNumberRe = regexp.MustCompile(`(\d+)\D*$`)

// ListPages returns the image files in dir ordered by document position.
//
// Files whose names carry a trailing number (page_2.png, page-10.jpg) are
// ordered numerically so that page_10 follows page_9 rather than page_1;
// files without a number sort lexically after the numbered ones.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory: %w", err)
	}

	var pages []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".png", ".jpg", ".jpeg", ".gif":
			pages = append(pages, filepath.Join(dir, e.Name()))
		}
	}

	sort.Slice(pages, func(i, j int) bool {
		ni, iok := trailingNumber(pages[i])
		nj, jok := trailingNumber(pages[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return pages[i] < pages[j]
	})

	return pages, nil
}

func trailingNumber(path string) (int, bool) {
	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	m := pageNumberRe.FindStringSubmatch(base)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
