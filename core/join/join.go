// Package join merges differently-shaped entity collections by key.
// Secondary collections are indexed once so joins stay O(n+m); master
// student lists can run to ~10,000 rows, nested scans are not acceptable.
package join

// Index builds a key -> record mapping. On duplicate keys the last record
// wins; use IndexAll when duplicates must be kept.
func Index[S any, K comparable](items []S, key func(S) K) map[K]S {
	idx := make(map[K]S, len(items))
	for _, it := range items {
		idx[key(it)] = it
	}
	return idx
}

// IndexAll groups records sharing a key, preserving input order per key.
func IndexAll[S any, K comparable](items []S, key func(S) K) map[K][]S {
	idx := make(map[K][]S, len(items))
	for _, it := range items {
		k := key(it)
		idx[k] = append(idx[k], it)
	}
	return idx
}

// Left joins every primary record against at most one secondary record
// sharing its key. Every primary appears exactly once in the output; when no
// secondary matches, merge receives the zero S and ok=false so the caller
// decides the defaults.
func Left[P, S, M any, K comparable](
	primary []P,
	secondary []S,
	key func(P) K,
	secondaryKey func(S) K,
	merge func(P, S, bool) M,
) []M {
	idx := Index(secondary, secondaryKey)
	out := make([]M, 0, len(primary))
	for _, p := range primary {
		s, ok := idx[key(p)]
		out = append(out, merge(p, s, ok))
	}
	return out
}

// LeftAll is Left for callers that need every matching secondary record
// rather than a last-wins pick.
func LeftAll[P, S, M any, K comparable](
	primary []P,
	secondary []S,
	key func(P) K,
	secondaryKey func(S) K,
	merge func(P, []S) M,
) []M {
	idx := IndexAll(secondary, secondaryKey)
	out := make([]M, 0, len(primary))
	for _, p := range primary {
		out = append(out, merge(p, idx[key(p)]))
	}
	return out
}

// GroupBy buckets items by key, preserving input order within each bucket.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	return IndexAll(items, key)
}
