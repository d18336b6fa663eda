package system

import (
	"image"
	"sync"
)

// ImagePool reuses *image.NRGBA pixel buffers of equal size across
// pipeline runs to take load off the garbage collector.
type ImagePool struct {
	pools map[image.Rectangle]*sync.Pool
	mu    sync.RWMutex
}

func NewImagePool() *ImagePool {
	return &ImagePool{
		pools: make(map[image.Rectangle]*sync.Pool),
	}
}

// Get returns a buffer covering rect, reused from the pool when possible.
// Its contents are unspecified.
func (p *ImagePool) Get(rect image.Rectangle) *image.NRGBA {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewNRGBA(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.NRGBA)
}

// Put hands img back for reuse. Buffers of a size never requested are dropped.
func (p *ImagePool) Put(img *image.NRGBA) {
	if img == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[img.Rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
