package store

import (
	"errors"

	"template-designer/internal/item"
)

// Container is a lightweight, poolable view object bound to one
// visible item. The hosting UI hangs its painted visual off Payload via
// the container-requested callback and tears it down on recycle.
type Container struct {
	it       item.Item
	selected bool
	forced   bool

	// Payload is the host's visual attachment. The store never touches
	// it beyond clearing on recycle.
	Payload interface{}
}

// Item returns the bound item, or nil for a pooled container.
func (c *Container) Item() item.Item { return c.it }

// Selected reports the container's visual selection flag.
func (c *Container) Selected() bool { return c.selected }

// SetSelected sets the container's visual selection flag.
func (c *Container) SetSelected(v bool) { c.selected = v }

// reset clears all item-association state before the container returns
// to the pool.
func (c *Container) reset() {
	c.it = nil
	c.selected = false
	c.forced = false
	c.Payload = nil
}

// DefaultPoolCapacity bounds the container free list unless configured
// otherwise.
const DefaultPoolCapacity = 100

// ErrInvalidCapacity is returned for non-positive pool capacities.
var ErrInvalidCapacity = errors.New("store: pool capacity must be positive")

// ContainerPool is a bounded free list of recycled containers. It is
// only ever touched from the UI thread; no locking is provided or
// required.
type ContainerPool struct {
	capacity int
	free     []*Container
}

// NewContainerPool creates a pool with the given capacity.
func NewContainerPool(capacity int) (*ContainerPool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &ContainerPool{capacity: capacity}, nil
}

// Take returns a recycled container or constructs a new one on a miss.
func (p *ContainerPool) Take() *Container {
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return c
	}
	return &Container{}
}

// Put recycles a container. Association state is cleared first; the
// container is discarded when the pool is full.
func (p *ContainerPool) Put(c *Container) {
	c.reset()
	if len(p.free) >= p.capacity {
		return
	}
	p.free = append(p.free, c)
}

// Capacity returns the configured capacity.
func (p *ContainerPool) Capacity() int { return p.capacity }

// FreeCount returns the number of pooled containers.
func (p *ContainerPool) FreeCount() int { return len(p.free) }

// SetCapacity reconfigures the pool, evicting excess pooled containers
// before the new capacity takes effect. Live containers are unaffected.
func (p *ContainerPool) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if len(p.free) > capacity {
		for i := capacity; i < len(p.free); i++ {
			p.free[i] = nil
		}
		p.free = p.free[:capacity]
	}
	p.capacity = capacity
	return nil
}
