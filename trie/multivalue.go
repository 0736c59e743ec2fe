package trie

// multiValue collects several values that share one key. It only ever
// appears when the trie is configured with WithDuplicateKeys; under the
// default unique-keys mode a slot always holds a bare value.
//
// A cell is either a single value or a multiValue bucket, distinguished by
// a nil check rather than a runtime type switch over an any-typed slot,
// which would also risk a collision if V itself were shaped like
// *multiValue[K, V].
type multiValue[K, V any] struct {
	key   K
	items []V
}

// cell is one occupied slot, either a terminal node's bin entry or a
// branching node's internal value. It always caches the slot's key so
// sorting, binary search, and compaction never need to re-derive it.
type cell[K, V any] struct {
	key   K
	value V
	multi *multiValue[K, V]
}

func singleCell[K, V any](key K, value V) cell[K, V] {
	return cell[K, V]{key: key, value: value}
}

func (c cell[K, V]) values() []V {
	if c.multi != nil {
		return c.multi.items
	}
	return []V{c.value}
}

// assign resolves what happens when a key already holds a value: overwrite
// under unique keys, append to an existing bucket, or fold two singles into
// a fresh bucket.
func assign[K, V any](uniqueKeys bool, old *cell[K, V], key K, value V) *cell[K, V] {
	if old == nil || uniqueKeys {
		c := singleCell(key, value)
		return &c
	}
	if old.multi != nil {
		old.multi.items = append(old.multi.items, value)
		return old
	}
	c := cell[K, V]{
		key:   key,
		multi: &multiValue[K, V]{key: key, items: []V{old.value, value}},
	}
	return &c
}

// mergeCells folds b into a when a sort pass finds them adjacent and equal
// by key; this is the same assign rule applied during the dedup walk that
// follows every bin sort.
func mergeCells[K, V any](uniqueKeys bool, a, b cell[K, V]) cell[K, V] {
	if uniqueKeys {
		return b
	}
	if a.multi != nil {
		a.multi.items = append(a.multi.items, b.values()...)
		return a
	}
	if b.multi != nil {
		merged := &multiValue[K, V]{key: a.key, items: append([]V{a.value}, b.multi.items...)}
		return cell[K, V]{key: a.key, multi: merged}
	}
	return cell[K, V]{key: a.key, multi: &multiValue[K, V]{key: a.key, items: []V{a.value, b.value}}}
}

// splitCell partitions a cell's values against filter, returning the removed
// values and the cell that should remain (nil if nothing remains). A nil
// filter removes everything.
func splitCell[K, V any](c cell[K, V], filter func(V) bool) ([]V, *cell[K, V]) {
	if c.multi == nil {
		if filter == nil || filter(c.value) {
			return []V{c.value}, nil
		}
		return nil, &c
	}
	var removed, kept []V
	for _, v := range c.multi.items {
		if filter == nil || filter(v) {
			removed = append(removed, v)
		} else {
			kept = append(kept, v)
		}
	}
	switch len(kept) {
	case 0:
		return removed, nil
	case 1:
		c := singleCell(c.key, kept[0])
		return removed, &c
	default:
		c := cell[K, V]{key: c.key, multi: &multiValue[K, V]{key: c.key, items: kept}}
		return removed, &c
	}
}
