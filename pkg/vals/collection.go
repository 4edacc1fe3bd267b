package vals

// Collection is implemented by *Array, *Map and *Set.
type Collection interface {
	Len() int
	Hook() CollectionHook
	SetHook(h CollectionHook)
	Observer(key string) any
	SetObserver(key string, obs any)
}

// CollectionHook receives a notification after each mutation of a collection.
type CollectionHook interface {
	CollectionMutated(m Mutation)
}

// Mutation describes a single change of a collection, always expressed as
// either a splice or a permutation.
//
// For a splice, Deleted holds the items removed at Start, and Inserted is the
// number of items that were inserted at Start in their place. Replacing an
// item is a splice that deletes and inserts one item.
//
// For a permutation (Perm != nil), the item now at index i was at index
// Perm[i] before the mutation.
type Mutation struct {
	Start    int
	Deleted  []any
	Inserted int
	Perm     []int
}

// MapEntry is a key-value pair of a Map. Deleted map items are reported as
// MapEntry values.
type MapEntry struct {
	Key   any
	Value any
}

type observerCache struct {
	hook      CollectionHook
	observers map[string]any
}

// Hook returns the mutation hook of the collection.
func (c *observerCache) Hook() CollectionHook { return c.hook }

// SetHook sets the mutation hook of the collection.
func (c *observerCache) SetHook(h CollectionHook) { c.hook = h }

// Observer returns the observer cached under key.
func (c *observerCache) Observer(key string) any { return c.observers[key] }

// SetObserver caches an observer under key.
func (c *observerCache) SetObserver(key string, obs any) {
	if c.observers == nil {
		c.observers = make(map[string]any)
	}
	c.observers[key] = obs
}

func (c *observerCache) mutated(m Mutation) {
	if c.hook != nil {
		c.hook.CollectionMutated(m)
	}
}
