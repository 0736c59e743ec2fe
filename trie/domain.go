package trie

// Unit is the atomic dispatch symbol a key is decomposed into: one byte for
// the string domain, one nibble (4 bits, values 0-15) for the number domain.
type Unit = uint8

// KeyDomain describes how keys of type K are decomposed into units, compared
// for a common prefix, truncated, and recombined. It is the capability
// abstraction a Trie is instantiated with; StringDomain and NumberDomain are
// the two built-in implementations.
//
// Every method operates on keys already expressed in the caller's coordinate
// frame: Match/CharAt index from the start of the key argument, never from an
// absolute position in some larger key. Trie itself is responsible for
// slicing a stored key down to the remainder still to be matched at a given
// node before calling into the domain.
type KeyDomain[K any] interface {
	// Len reports the unit-length of k.
	Len(k K) int
	// Match returns the length of the longest common prefix of a and b, in
	// units, capped at min(Len(a), Len(b)).
	Match(a, b K) int
	// Prefix returns the first n units of k as a key of unit-length n.
	Prefix(k K, n int) K
	// Suffix returns the units of k starting at position from, as a key of
	// unit-length Len(k)-from.
	Suffix(k K, from int) K
	// CharAt returns the unit at position i.
	CharAt(k K, i int) Unit
	// Compare provides a total order over keys; negative/zero/positive.
	Compare(a, b K) int
	// Concat returns a followed by b.
	Concat(a, b K) K
	// AppendUnit returns k with a single unit u appended.
	AppendUnit(k K, u Unit) K
	// EmptyPrefix is the key value denoting zero units.
	EmptyPrefix() K
}
