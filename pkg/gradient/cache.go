package gradient

import (
	"math"

	"github.com/decker502/hero/internal/palette"
	"github.com/decker502/hero/pkg/surface"
)

// DefaultCapacity bounds the number of cached sprites per effect.
const DefaultCapacity = 500

// RadiusStep is the radius quantization step. Radii are rounded up, so a
// cached sprite is never smaller than the area it is stretched over.
const RadiusStep = 10

// Key identifies one cached sprite. Flash is only part of the key for Flash sprites.
type Key struct {
	Color  palette.RGB
	Radius int
	Kind   Kind
	Flash  palette.RGB
}

// Stats counts cache traffic.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
}

// Cache memoizes rendered gradient sprites.
//
// When full, inserting a new sprite first evicts the oldest inserted
// entry. Lookups do not refresh an entry's age.
type Cache struct {
	capacity int
	factory  surface.SpriteFactory
	entries  map[Key]surface.Sprite
	order    []Key
	stats    Stats
}

// NewCache creates a cache holding at most capacity sprites, converting
// rendered images with factory. A capacity ≤ 0 selects DefaultCapacity.
func NewCache(capacity int, factory surface.SpriteFactory) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		factory:  factory,
		entries:  make(map[Key]surface.Sprite, capacity),
		order:    make([]Key, 0, capacity),
	}
}

// QuantizeRadius rounds radius up to the next multiple of RadiusStep.
func QuantizeRadius(radius float64) int {
	return int(math.Ceil(radius/RadiusStep)) * RadiusStep
}

// KeyFor builds the cache key for a sprite request.
func KeyFor(kind Kind, c palette.RGB, radius float64, flash palette.RGB) Key {
	k := Key{Color: c, Radius: QuantizeRadius(radius), Kind: kind}
	if kind == Flash {
		k.Flash = flash
	}
	return k
}

// Get returns the sprite for the request, rendering it on a miss.
// Returns nil when the quantized radius is not positive, no factory is set
// or the factory yields no sprite; nil results are not cached.
func (c *Cache) Get(kind Kind, col palette.RGB, radius float64, flash palette.RGB) surface.Sprite {
	key := KeyFor(kind, col, radius, flash)
	if key.Radius <= 0 || c.factory == nil {
		return nil
	}

	if sp, ok := c.entries[key]; ok {
		c.stats.Hits++
		return sp
	}
	c.stats.Misses++

	sp := c.factory(Render(kind, key.Color, key.Flash, key.Radius))
	if sp == nil {
		return nil
	}
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = sp
	c.order = append(c.order, key)
	return sp
}

func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
	c.stats.Evictions++
}

// Len returns the number of cached sprites.
func (c *Cache) Len() int { return len(c.entries) }

// Capacity returns the configured bound.
func (c *Cache) Capacity() int { return c.capacity }

// Stats returns a snapshot of the traffic counters.
func (c *Cache) Stats() Stats { return c.stats }
