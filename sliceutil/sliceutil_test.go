package sliceutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Unique([]int{1, 2, 2, 3, 4, 4, 5}))
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "b", "c"}))
	assert.Equal(t, []int{1, 2, 3}, Unique([]int{1, 2, 3}))
	assert.Empty(t, Unique([]int{}))
	assert.Empty(t, Unique[int](nil))
}

func TestUniqueByKeepsFirst(t *testing.T) {
	type user struct{ name, email string }
	in := []user{{"a", "x@y.z"}, {"b", "x@y.z"}, {"c", "c@y.z"}}

	got := UniqueBy(in, func(u user) string { return u.email })
	assert.Equal(t, []user{{"a", "x@y.z"}, {"c", "c@y.z"}}, got)
}

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, Chunk([]int{1, 2, 3, 4}, 2))
	assert.Equal(t, [][]int{{1, 2}}, Chunk([]int{1, 2}, 5))
	assert.Empty(t, Chunk([]int{}, 2))
	assert.Empty(t, Chunk([]int{1, 2, 3}, 0))
	assert.Empty(t, Chunk([]int{1, 2, 3}, -1))

	in := []int{1, 2, 3}
	chunks := Chunk(in, 2)
	chunks[0][0] = 99
	assert.Equal(t, 1, in[0], "chunks do not alias the input")
}

func TestFlatten(t *testing.T) {
	nested := []any{1, []any{2, []any{3, []any{4}}}}

	assert.Equal(t, []any{1, 2, 3}, Flatten([]any{1, []any{2, 3}}, 1))
	assert.Equal(t, []any{1, 2, 3, []any{4}}, Flatten(nested, 2))
	assert.Equal(t, []any{1, 2, []any{3, []any{4}}}, Flatten(nested, 1))
	assert.Equal(t, []any{1, 2, 3, 4}, Flatten(nested, -1))
	assert.Equal(t, nested, Flatten(nested, 0))
	assert.Empty(t, Flatten(nil, 1))
}

func TestShuffle(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	orig := slices.Clone(in)

	got := Shuffle(in)
	assert.ElementsMatch(t, in, got)
	assert.Equal(t, orig, in, "input is left untouched")
	assert.Empty(t, Shuffle([]int{}))
}

func TestGroupBy(t *testing.T) {
	type item struct{ kind, name string }
	items := []item{
		{"fruit", "apple"},
		{"vegetable", "carrot"},
		{"fruit", "banana"},
	}

	grouped := GroupBy(items, func(i item) string { return i.kind })
	assert.Len(t, grouped, 2)
	assert.Equal(t, []item{{"fruit", "apple"}, {"fruit", "banana"}}, grouped["fruit"])
	assert.Len(t, grouped["vegetable"], 1)

	assert.Empty(t, GroupBy([]int{}, func(i int) int { return i }))
}
