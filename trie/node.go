package trie

import "slices"

// node is the hybrid terminal/branching structure at the heart of the trie:
// a terminal node (edges == nil) holds an unsorted-or-sorted bin of values; a
// branching node holds a sparse jump table by unit plus an optional internal
// value for the key that terminates exactly at this node.
//
// skip is always relative to this node's own depth, i.e. the units this node
// consumes on the path from its parent — never an absolute path from the
// root. Matching a stored key against skip therefore first requires slicing
// that key down to the remainder still to be matched (see the depth
// parameter threaded through addNode, find and deleteNode).
type node[K, V any] struct {
	skip     K
	edges    map[Unit]*node[K, V] // nil => terminal
	bin      []cell[K, V]         // terminal only
	internal *cell[K, V]          // branching only; nil => no exact-prefix value
	dirty    bool                 // terminal only: bin may be unsorted
}

func (n *node[K, V]) isTerminal() bool { return n.edges == nil }

func newTerminal[K, V any](skip K) *node[K, V] {
	return &node[K, V]{skip: skip}
}

// addNode inserts value under fullKey into the subtree rooted at n, returning
// the (possibly new) node that should replace n in its parent. depth is the
// number of units of fullKey already consumed by ancestors before n.
func (t *Trie[K, V]) addNode(n *node[K, V], depth int, fullKey K, value V) *node[K, V] {
	if n.isTerminal() {
		return t.insertTerminal(n, depth, fullKey, value)
	}

	rem := t.domain.Suffix(fullKey, depth)
	m := t.domain.Match(rem, n.skip)
	if m < t.domain.Len(n.skip) {
		return t.split(n, depth, fullKey, value, m)
	}

	if t.domain.Len(rem) == m {
		n.internal = assign(t.uniqueKeys, n.internal, fullKey, value)
		return n
	}

	u := t.domain.CharAt(rem, m)
	childDepth := depth + m + 1
	child := n.edges[u]
	if child == nil {
		child = newTerminal[K, V](t.domain.EmptyPrefix())
	}
	n.edges[u] = t.addNode(child, childDepth, fullKey, value)
	return n
}

// insertTerminal appends value to n's bin: skip shrinks if the new key
// doesn't share the whole of it (or is set outright, for a freshly created
// empty node), and dirty is set whenever the append doesn't preserve sort
// order.
func (t *Trie[K, V]) insertTerminal(n *node[K, V], depth int, fullKey K, value V) *node[K, V] {
	rem := t.domain.Suffix(fullKey, depth)
	if len(n.bin) == 0 {
		n.skip = rem
		n.bin = append(n.bin, singleCell(fullKey, value))
		t.explode(n, depth)
		return n
	}
	m := t.domain.Match(rem, n.skip)
	if m < t.domain.Len(n.skip) {
		n.skip = t.domain.Prefix(n.skip, m)
	}
	if t.domain.Compare(fullKey, n.bin[len(n.bin)-1].key) <= 0 {
		n.dirty = true
	}
	n.bin = append(n.bin, singleCell(fullKey, value))
	t.explode(n, depth)
	return n
}

// split breaks a branching node's skip at the point where it diverges from
// the key being inserted. The surviving suffix of the former skip, along
// with this node's edges and internal value, move to a freshly created
// child; this node keeps only the shared prefix and re-dispatches the
// insert.
//
// The child inherits the suffix of the old skip *after* the single dispatch
// unit, not the old skip verbatim: that unit is consumed by the edge map key
// itself, so the child's own skip must start one unit further in.
func (t *Trie[K, V]) split(n *node[K, V], depth int, fullKey K, value V, m int) *node[K, V] {
	oldSkip := n.skip
	u := t.domain.CharAt(oldSkip, m)
	child := &node[K, V]{
		skip:     t.domain.Suffix(oldSkip, m+1),
		edges:    n.edges,
		bin:      n.bin,
		internal: n.internal,
		dirty:    n.dirty,
	}
	n.skip = t.domain.Prefix(oldSkip, m)
	n.edges = map[Unit]*node[K, V]{u: child}
	n.bin = nil
	n.internal = nil
	n.dirty = false
	t.observer.onSplit()
	return t.addNode(n, depth, fullKey, value)
}

// explode transforms an overfull terminal node into a branching node. A
// no-op unless the bin exceeds binSize even after a sort-and-dedup pass,
// which makes a second call immediately after the first a no-op too.
func (t *Trie[K, V]) explode(n *node[K, V], depth int) {
	if len(n.bin) <= t.binSize {
		return
	}
	t.sortAndDedup(n)
	if len(n.bin) <= t.binSize {
		return
	}

	bin := n.bin
	first := t.domain.Suffix(bin[0].key, depth)
	last := t.domain.Suffix(bin[len(bin)-1].key, depth)
	lcp := t.domain.Match(first, last)
	n.skip = t.domain.Prefix(first, lcp)

	start := 0
	n.internal = nil
	if t.domain.Len(first) == lcp {
		c := bin[0]
		n.internal = &c
		start = 1
	}

	n.edges = make(map[Unit]*node[K, V])
	n.bin = nil
	n.dirty = false

	i := start
	for i < len(bin) {
		u := t.domain.CharAt(t.domain.Suffix(bin[i].key, depth), lcp)
		j := i + 1
		for j < len(bin) && t.domain.CharAt(t.domain.Suffix(bin[j].key, depth), lcp) == u {
			j++
		}
		n.edges[u] = t.newTerminalGroup(bin[i:j], depth+lcp+1)
		i = j
	}
	t.observer.onExplode()
}

// newTerminalGroup builds a terminal node from a contiguous, already
// sorted-and-deduped slice of a parent bin, then explodes it again in case
// the group itself still exceeds binSize.
func (t *Trie[K, V]) newTerminalGroup(cells []cell[K, V], depth int) *node[K, V] {
	first := t.domain.Suffix(cells[0].key, depth)
	last := t.domain.Suffix(cells[len(cells)-1].key, depth)
	lcp := t.domain.Match(first, last)

	child := &node[K, V]{
		skip: t.domain.Prefix(first, lcp),
		bin:  append([]cell[K, V](nil), cells...),
	}
	t.explode(child, depth)
	return child
}

// sortAndDedup sorts a dirty bin by key and folds adjacent equal-keyed
// entries via mergeCells. A no-op when the bin is already known sorted.
func (t *Trie[K, V]) sortAndDedup(n *node[K, V]) {
	if !n.dirty {
		return
	}
	slices.SortStableFunc(n.bin, func(a, b cell[K, V]) int {
		return t.domain.Compare(a.key, b.key)
	})
	out := n.bin[:0]
	for _, c := range n.bin {
		if len(out) > 0 && t.domain.Compare(out[len(out)-1].key, c.key) == 0 {
			out[len(out)-1] = mergeCells(t.uniqueKeys, out[len(out)-1], c)
			continue
		}
		out = append(out, c)
	}
	n.bin = out
	n.dirty = false
}

// find walks the subtree rooted at n looking for fullKey. ok is false on a
// structural miss (the key's prefix doesn't match this subtree) as well as
// on a terminal bin miss.
func (t *Trie[K, V]) find(n *node[K, V], depth int, fullKey K) (*cell[K, V], bool) {
	if n == nil {
		return nil, false
	}
	rem := t.domain.Suffix(fullKey, depth)
	m := t.domain.Match(rem, n.skip)
	if m != t.domain.Len(n.skip) {
		return nil, false
	}
	if n.isTerminal() {
		t.sortAndDedup(n)
		idx, found := slices.BinarySearchFunc(n.bin, fullKey, func(c cell[K, V], target K) int {
			return t.domain.Compare(c.key, target)
		})
		if !found {
			return nil, false
		}
		return &n.bin[idx], true
	}
	if t.domain.Len(rem) == m {
		if n.internal == nil {
			return nil, false
		}
		return n.internal, true
	}
	u := t.domain.CharAt(rem, m)
	child := n.edges[u]
	if child == nil {
		return nil, false
	}
	return t.find(child, depth+m+1, fullKey)
}

// deleteNode walks the subtree rooted at n removing fullKey. ok reports
// whether the key was found (even if filter kept every matching value, in
// which case removed is empty) so the caller knows whether to run
// compaction on the path back up.
func (t *Trie[K, V]) deleteNode(n *node[K, V], depth int, fullKey K, filter func(V) bool) ([]V, *node[K, V], bool) {
	if n == nil {
		return nil, n, false
	}
	rem := t.domain.Suffix(fullKey, depth)
	m := t.domain.Match(rem, n.skip)
	if m != t.domain.Len(n.skip) {
		return nil, n, false
	}

	if n.isTerminal() {
		t.sortAndDedup(n)
		idx, found := slices.BinarySearchFunc(n.bin, fullKey, func(c cell[K, V], target K) int {
			return t.domain.Compare(c.key, target)
		})
		if !found {
			return nil, n, false
		}
		removed, keep := splitCell(n.bin[idx], filter)
		if keep == nil {
			n.bin = append(n.bin[:idx], n.bin[idx+1:]...)
			if len(n.bin) > 0 {
				first := t.domain.Suffix(n.bin[0].key, depth)
				last := t.domain.Suffix(n.bin[len(n.bin)-1].key, depth)
				n.skip = t.domain.Prefix(first, t.domain.Match(first, last))
			}
		} else {
			n.bin[idx] = *keep
		}
		return removed, n, true
	}

	if t.domain.Len(rem) == m {
		if n.internal == nil {
			return nil, n, false
		}
		removed, keep := splitCell(*n.internal, filter)
		n.internal = keep
		if keep == nil && len(n.edges) == 1 {
			for u := range n.edges {
				t.compact(n, u)
			}
		}
		return removed, n, true
	}

	u := t.domain.CharAt(rem, m)
	child := n.edges[u]
	if child == nil {
		return nil, n, false
	}
	removed, newChild, ok := t.deleteNode(child, depth+m+1, fullKey, filter)
	if !ok {
		return nil, n, false
	}
	n.edges[u] = newChild
	t.compact(n, u)
	return removed, n, true
}

// compact cleans up after a deletion along the edge dispatched by u: it
// drops a now-empty child, collapses a childless branching node to a
// terminal (empty, or holding its internal value as the only bin entry),
// and, when no internal value remains, splices a lone remaining child back
// up by concatenating the surviving child's skip onto this node's own skip plus
// the dispatch unit, which is what keeps skip equal to the subtree's
// common prefix.
func (t *Trie[K, V]) compact(n *node[K, V], u Unit) {
	if child := n.edges[u]; child != nil && child.isTerminal() && len(child.bin) == 0 {
		delete(n.edges, u)
	}

	var onlyUnit Unit
	count := 0
	for unit := range n.edges {
		onlyUnit = unit
		count++
		if count > 1 {
			break
		}
	}

	if count == 0 && n.internal == nil {
		n.edges = nil
		n.bin = nil
		n.dirty = false
		t.observer.onCompact()
		return
	}
	if count == 0 {
		n.edges = nil
		n.bin = []cell[K, V]{*n.internal}
		n.internal = nil
		n.dirty = false
		t.observer.onCompact()
		return
	}
	if count == 1 && n.internal == nil {
		child := n.edges[onlyUnit]
		n.skip = t.domain.Concat(t.domain.AppendUnit(n.skip, onlyUnit), child.skip)
		n.edges = child.edges
		n.bin = child.bin
		n.internal = child.internal
		n.dirty = child.dirty
		t.observer.onCompact()
	}
}
