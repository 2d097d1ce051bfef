// Package sliceutil has generic slice helpers: de-duplication, chunking,
// flattening, shuffling and grouping. None of them modify their input.
package sliceutil

import "math/rand/v2"

// Unique returns the distinct elements of s in order of first appearance.
func Unique[T comparable](s []T) []T {
	return UniqueBy(s, func(v T) T { return v })
}

// UniqueBy keeps the first element for every distinct key.
func UniqueBy[T any, K comparable](s []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Chunk splits s into consecutive slices of size elements; the last one
// may be shorter. A size below 1 yields no chunks.
func Chunk[T any](s []T, size int) [][]T {
	if size < 1 {
		return [][]T{}
	}

	out := make([][]T, 0, (len(s)+size-1)/size)
	for i := 0; i < len(s); i += size {
		end := min(i+size, len(s))
		out = append(out, append([]T(nil), s[i:end]...))
	}
	return out
}

// Flatten expands nested []any values up to depth levels. A negative depth
// flattens completely; depth 0 returns a copy of s.
func Flatten(s []any, depth int) []any {
	out := make([]any, 0, len(s))
	for _, v := range s {
		nested, ok := v.([]any)
		if !ok || depth == 0 {
			out = append(out, v)
			continue
		}
		out = append(out, Flatten(nested, depth-1)...)
	}
	return out
}

// Shuffle returns a randomly permuted copy of s.
func Shuffle[T any](s []T) []T {
	out := append([]T(nil), s...)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// GroupBy buckets the elements of s by key, keeping their relative order
// inside each bucket.
func GroupBy[T any, K comparable](s []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := key(v)
		out[k] = append(out[k], v)
	}
	return out
}
