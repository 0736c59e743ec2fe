package trie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPropertyRoundTrip checks that every added value is reachable by its
// own key afterward, across a word list with overlapping prefixes.
func TestPropertyRoundTrip(t *testing.T) {
	tr := New[string, string](StringDomain{}, WithBinSize[string, string](3))
	keys := []string{"apple", "application", "apply", "banana", "band", "bandana", "can", "candy"}
	for _, k := range keys {
		tr.Add(k)
	}
	for _, k := range keys {
		values, ok := tr.Get(k)
		require.True(t, ok, "expected hit for %q", k)
		assert.Contains(t, values, k)
	}
	checkInvariants(t, tr)
}

// TestPropertyDeleteUndoesAdd checks that deleting the sole value in a tree
// returns it and leaves the key unreachable afterward.
func TestPropertyDeleteUndoesAdd(t *testing.T) {
	tr := New[string, string](StringDomain{})
	tr.Add("soleValue")

	removed, ok := tr.Delete("soleValue")
	require.True(t, ok)
	assert.Equal(t, []string{"soleValue"}, removed)

	_, ok = tr.Get("soleValue")
	assert.False(t, ok)
}

// TestPropertyEmptyReset checks that after deleting the last value, the
// root resets to an empty terminal node: no bin, not dirty, empty skip.
func TestPropertyEmptyReset(t *testing.T) {
	tr := New[string, string](StringDomain{})
	tr.Add("x")
	tr.Add("y")
	tr.Delete("x")
	tr.Delete("y")

	assert.True(t, tr.root.isTerminal())
	assert.Empty(t, tr.root.bin)
	assert.False(t, tr.root.dirty)
	assert.Equal(t, "", tr.root.skip)
	assert.Equal(t, 0, tr.Len())
}

// TestPropertyDuplicateSemantics checks that with WithDuplicateKeys, adding
// N values under one shared key yields a Get result containing all N. The
// identity-keyed Trie[K, V] (K == V) can't hold several distinct values
// under one key by construction, so this uses attribute mode, where the key
// is a field of V distinct from V itself.
func TestPropertyDuplicateSemantics(t *testing.T) {
	type item struct {
		key string
		n   int
	}
	tr := New[string, item](StringDomain{},
		WithKeyFunc[string, item](func(v item) (string, bool) { return v.key, true }),
		WithDuplicateKeys[string, item]())

	for i := 0; i < 5; i++ {
		tr.Add(item{key: "shared", n: i})
	}
	values, ok := tr.Get("shared")
	require.True(t, ok)
	require.Len(t, values, 5)
	seen := map[int]bool{}
	for _, v := range values {
		seen[v.n] = true
	}
	for i := 0; i < 5; i++ {
		assert.True(t, seen[i], "expected n=%d present", i)
	}
	checkInvariants(t, tr)
}

// TestPropertyIdempotentExplode checks that calling explode twice in a row
// is a no-op after the first.
func TestPropertyIdempotentExplode(t *testing.T) {
	tr := New[string, string](StringDomain{}, WithBinSize[string, string](2))
	tr.Add("aaa")
	tr.Add("bbb")
	tr.Add("ccc")
	require.False(t, tr.root.isTerminal(), "expected the third add to have exploded the root")

	before := fmt.Sprintf("%+v", tr.root)
	tr.explode(tr.root, 0)
	after := fmt.Sprintf("%+v", tr.root)
	assert.Equal(t, before, after, "a second explode call must be a no-op")
}

// TestPropertyInvariantsUnderMixedOps is a denser invariant check: a fixed
// (deterministic, not randomized) sequence of adds and deletes over a small
// alphabet, checked for violations after every single operation.
func TestPropertyInvariantsUnderMixedOps(t *testing.T) {
	tr := New[string, string](StringDomain{}, WithBinSize[string, string](3))
	words := []string{
		"aa", "ab", "ac", "ba", "bb", "bc", "ca", "cb", "cc",
		"aaa", "aab", "aac", "baa", "bab", "bac",
	}
	for _, w := range words {
		tr.Add(w)
		checkInvariants(t, tr)
	}
	for i, w := range words {
		if i%2 == 0 {
			tr.Delete(w)
			checkInvariants(t, tr)
		}
	}
	for i, w := range words {
		_, ok := tr.Get(w)
		if i%2 == 0 {
			assert.False(t, ok, "expected %q to have been deleted", w)
		} else {
			assert.True(t, ok, "expected %q to still be present", w)
		}
	}
}
