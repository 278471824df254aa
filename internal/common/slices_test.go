package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FilterEmpty("a", "", "b", ""))
	assert.Equal(t, []int{1, 2}, FilterEmpty(0, 1, 0, 2))
	assert.Empty(t, FilterEmpty("", ""))
}

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	batches := Chunk(items, 3)
	require.Len(t, batches, 3)
	assert.Equal(t, []int{1, 2, 3}, batches[0])
	assert.Equal(t, []int{4, 5, 6}, batches[1])
	assert.Equal(t, []int{7}, batches[2])
}

func TestChunkExactMultiple(t *testing.T) {
	batches := Chunk([]int{1, 2, 3, 4}, 2)
	require.Len(t, batches, 2)
	assert.Equal(t, []int{3, 4}, batches[1])
}

func TestChunkEdgeCases(t *testing.T) {
	assert.Empty(t, Chunk([]int{}, 3))

	// A size below one keeps everything in one batch
	batches := Chunk([]int{1, 2, 3}, 0)
	require.Len(t, batches, 1)
	assert.Equal(t, []int{1, 2, 3}, batches[0])
}
