// Package trie implements an in-memory compressed prefix tree (radix /
// PATRICIA trie): an associative container mapping keys drawn from a
// pluggable key domain to user-supplied values, tuned for workloads where
// many keys share long common prefixes.
//
// The engine is single-threaded and non-reentrant: every Add/Get/Delete
// mutates the tree eagerly and returns synchronously, and a Trie shared
// across goroutines needs external synchronization.
package trie

import "github.com/ethereum/go-ethereum/log"

const defaultBinSize = 256

// Trie is the facade over the node tree: it holds the root, the resolved
// key-domain functions, and the configuration every node operation needs.
// It is not safe for concurrent use.
type Trie[K, V any] struct {
	domain     KeyDomain[K]
	getKey     func(V) (K, bool)
	uniqueKeys bool
	binSize    int
	root       *node[K, V]
	observer   *changeObserver
}

// Option configures a Trie at construction time. All options are optional;
// see WithKeyFunc, WithDuplicateKeys, WithBinSize, and WithLogger.
type Option[K, V any] func(*Trie[K, V])

// WithKeyFunc supplies the function used to extract a value's key, for
// "attribute" mode, where the key lives in a field of V distinct from V
// itself. Without this option, values are assumed to be their own
// keys: K and V must be the same type, enforced at the first Add via a
// runtime type assertion rather than at construction (Go generics have no
// way to express "K equals V" as a constraint between two independent type
// parameters).
func WithKeyFunc[K, V any](fn func(V) (K, bool)) Option[K, V] {
	return func(t *Trie[K, V]) { t.getKey = fn }
}

// WithDuplicateKeys disables the default unique-keys behavior, so that
// adding a second value under an already-present key folds both into a
// MultiValue bucket instead of overwriting.
func WithDuplicateKeys[K, V any]() Option[K, V] {
	return func(t *Trie[K, V]) { t.uniqueKeys = false }
}

// WithBinSize overrides the terminal-bin explosion threshold (default 256).
func WithBinSize[K, V any](n int) Option[K, V] {
	if n <= 0 {
		panic(errorf("triekv: bin size must be positive, got %d", n))
	}
	return func(t *Trie[K, V]) { t.binSize = n }
}

// WithLogger routes structural-rewrite debug records (see observer.go) to
// logger instead of the package default (log.Root()).
func WithLogger[K, V any](logger log.Logger) Option[K, V] {
	return func(t *Trie[K, V]) { t.observer.logger = logger }
}

// New constructs an empty Trie over the given key domain. Pass StringDomain{}
// or NumberDomain{} for the two built-in domains, or a caller-supplied
// implementation of KeyDomain[K].
func New[K, V any](domain KeyDomain[K], opts ...Option[K, V]) *Trie[K, V] {
	t := &Trie[K, V]{
		domain:     domain,
		uniqueKeys: true,
		binSize:    defaultBinSize,
		observer:   newChangeObserver(log.Root()),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.getKey == nil {
		t.getKey = identityGetKey[K, V]
	}
	t.root = newTerminal[K, V](domain.EmptyPrefix())
	return t
}

func identityGetKey[K, V any](v V) (K, bool) {
	k, ok := any(v).(K)
	return k, ok
}

// Add inserts value, keyed by getKey(value). There is no return value; a
// value whose key cannot be extracted is a programmer error and panics
// rather than failing silently.
func (t *Trie[K, V]) Add(value V) {
	key := mustKey(t.getKey, value)
	t.root = t.addNode(t.root, 0, key, value)
	t.observer.flush("add")
}

// Get looks up key and returns the value(s) stored under it. ok is false
// when the key is absent, or when every stored value was excluded by an
// optional filter. Under the default uniqueKeys mode the result always has
// length at most 1; under WithDuplicateKeys it may hold several values.
func (t *Trie[K, V]) Get(key K, filter ...func(V) bool) ([]V, bool) {
	c, ok := t.find(t.root, 0, key)
	if !ok {
		return nil, false
	}
	values := c.values()
	if f := firstFilter(filter); f != nil {
		values = filterValues(values, f)
	}
	if len(values) == 0 {
		return nil, false
	}
	return values, true
}

// Delete removes the value(s) stored under key, optionally restricted to
// those for which filter returns true (a nil/absent filter removes
// everything under the key). It returns what was actually removed, or
// ok == false if nothing was. When the trie becomes empty, the root's skip
// is reset to the domain's empty prefix so an empty Trie always looks the
// same regardless of how it got there.
func (t *Trie[K, V]) Delete(key K, filter ...func(V) bool) ([]V, bool) {
	removed, newRoot, _ := t.deleteNode(t.root, 0, key, firstFilter(filter))
	t.root = newRoot
	if t.root.isTerminal() && len(t.root.bin) == 0 && t.root.internal == nil {
		t.root.skip = t.domain.EmptyPrefix()
		t.root.dirty = false
	}
	t.observer.flush("delete")
	return removed, len(removed) > 0
}

// Len reports the number of distinct values currently stored. Under
// WithDuplicateKeys, each member of a MultiValue bucket counts separately.
func (t *Trie[K, V]) Len() int {
	return countValues(t.root)
}

// Stats is a cheap read-only summary of the tree's current shape, useful for
// tuning WithBinSize.
type Stats struct {
	Values       int // total stored values, as Len()
	TerminalBins int // number of terminal nodes
	MaxBinSize   int // largest bin currently held by any terminal node
}

// Stats reports Values, TerminalBins, and MaxBinSize for the current tree.
func (t *Trie[K, V]) Stats() Stats {
	var s Stats
	collectStats(t.root, &s)
	return s
}

func collectStats[K, V any](n *node[K, V], s *Stats) {
	if n == nil {
		return
	}
	if n.isTerminal() {
		s.TerminalBins++
		total := 0
		for _, c := range n.bin {
			total += len(c.values())
		}
		s.Values += total
		if len(n.bin) > s.MaxBinSize {
			s.MaxBinSize = len(n.bin)
		}
		return
	}
	if n.internal != nil {
		s.Values += len(n.internal.values())
	}
	for _, child := range n.edges {
		collectStats(child, s)
	}
}

func countValues[K, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	if n.isTerminal() {
		total := 0
		for _, c := range n.bin {
			total += len(c.values())
		}
		return total
	}
	total := 0
	if n.internal != nil {
		total += len(n.internal.values())
	}
	for _, child := range n.edges {
		total += countValues(child)
	}
	return total
}

func firstFilter[V any](filters []func(V) bool) func(V) bool {
	if len(filters) == 0 {
		return nil
	}
	return filters[0]
}

// filterValues returns a filtered copy; it must never alias values, which
// for a MultiValue bucket is the live, stored backing slice and would
// otherwise let a read-only Get corrupt trie state.
func filterValues[V any](values []V, filter func(V) bool) []V {
	out := make([]V, 0, len(values))
	for _, v := range values {
		if filter(v) {
			out = append(out, v)
		}
	}
	return out
}
