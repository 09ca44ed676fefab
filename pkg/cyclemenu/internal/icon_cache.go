package internal

const defaultMaxCacheSize = 16

// IconCache is a small LRU for rendered icons. onEvict, when set, receives
// every value that leaves the cache so textures can be destroyed.
type IconCache[V any] struct {
	values  map[string]V
	order   []string // least recently used first
	maxSize int
	onEvict func(V)
}

func NewIconCache[V any](onEvict func(V)) *IconCache[V] {
	return NewIconCacheWithSize(defaultMaxCacheSize, onEvict)
}

func NewIconCacheWithSize[V any](maxSize int, onEvict func(V)) *IconCache[V] {
	maxSize = max(1, maxSize)
	return &IconCache[V]{
		values:  make(map[string]V),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		onEvict: onEvict,
	}
}

func (c *IconCache[V]) Get(key string) (V, bool) {
	v, ok := c.values[key]
	if ok {
		c.moveToEnd(key)
	}
	return v, ok
}

func (c *IconCache[V]) Set(key string, v V) {
	if _, exists := c.values[key]; exists {
		c.values[key] = v
		c.moveToEnd(key)
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.values[key] = v
	c.order = append(c.order, key)
}

func (c *IconCache[V]) Len() int {
	return len(c.order)
}

func (c *IconCache[V]) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *IconCache[V]) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]

	if v, exists := c.values[oldest]; exists {
		delete(c.values, oldest)
		c.evict(v)
	}
}

func (c *IconCache[V]) evict(v V) {
	if c.onEvict != nil {
		c.onEvict(v)
	}
}

// Destroy evicts everything.
func (c *IconCache[V]) Destroy() {
	for _, key := range c.order {
		c.evict(c.values[key])
	}
	c.values = make(map[string]V)
	c.order = c.order[:0]
}
