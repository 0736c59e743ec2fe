package trie

import "testing"

// collectKeys returns the absolute keys of every occupied slot in the
// subtree rooted at n: one per terminal bin entry, one per branching node's
// internal value. Duplicate-keyed MultiValue buckets still contribute a
// single key, since this only tracks occupied key slots, not value counts.
func collectKeys[K, V any](n *node[K, V]) []K {
	if n == nil {
		return nil
	}
	if n.isTerminal() {
		keys := make([]K, len(n.bin))
		for i, c := range n.bin {
			keys[i] = c.key
		}
		return keys
	}
	var keys []K
	if n.internal != nil {
		keys = append(keys, n.internal.key)
	}
	for _, child := range n.edges {
		keys = append(keys, collectKeys(child)...)
	}
	return keys
}

func lcpAll[K any](domain KeyDomain[K], keys []K) K {
	lcp := keys[0]
	for _, k := range keys[1:] {
		lcp = domain.Prefix(lcp, domain.Match(lcp, k))
	}
	return lcp
}

// checkInvariants crawls the tree held by tr and fails t if any of its
// structural invariants (I1-I6: edge dispatch, skip-as-common-prefix for
// both node kinds, bin size, branching fan-out, key uniqueness) don't hold.
// It recomputes skip/edge-dispatch structure from scratch rather than
// trusting node.go's own bookkeeping, since a test helper built out of the
// same machinery it's meant to verify would miss bugs in that machinery.
func checkInvariants[K, V any](t *testing.T, tr *Trie[K, V]) {
	t.Helper()
	checkNode(t, tr, tr.root, 0)
	if !tr.uniqueKeys {
		return
	}
	keys := collectKeys(tr.root)
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if tr.domain.Compare(keys[i], keys[j]) == 0 {
				t.Errorf("I6 violated: duplicate key stored while uniqueKeys is set")
			}
		}
	}
}

func checkNode[K, V any](t *testing.T, tr *Trie[K, V], n *node[K, V], depth int) {
	t.Helper()
	domain := tr.domain
	keys := collectKeys(n)
	rel := make([]K, len(keys))
	for i, k := range keys {
		rel[i] = domain.Suffix(k, depth)
	}

	if n.isTerminal() {
		if len(n.bin) > tr.binSize {
			t.Errorf("I4 violated: terminal bin holds %d entries, binSize is %d", len(n.bin), tr.binSize)
		}
		if len(rel) > 0 {
			lcp := lcpAll(domain, rel)
			if domain.Compare(lcp, n.skip) != 0 {
				t.Errorf("I3 violated at depth %d: terminal skip is not the bin's common prefix", depth)
			}
		}
		return
	}

	if len(rel) > 0 {
		lcp := lcpAll(domain, rel)
		if domain.Compare(lcp, n.skip) != 0 {
			t.Errorf("I2 violated at depth %d: branching skip is not the subtree's common prefix", depth)
		}
	}

	paths := 0
	if n.internal != nil {
		paths++
	}
	childDepth := depth + domain.Len(n.skip) + 1
	for u, child := range n.edges {
		paths++
		for _, k := range collectKeys(child) {
			r := domain.Suffix(k, depth+domain.Len(n.skip))
			if domain.Len(r) == 0 || domain.CharAt(r, 0) != u {
				t.Errorf("I1 violated: a key reachable under edges[%d] doesn't dispatch to unit %d", u, u)
			}
		}
		checkNode(t, tr, child, childDepth)
	}
	if paths < 2 {
		t.Errorf("I5 violated at depth %d: branching node has %d outgoing path(s), want at least 2", depth, paths)
	}
}
