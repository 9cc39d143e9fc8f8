package ids_test

import (
	"strconv"
	"testing"

	"manifestkit/internal/ids"

	"github.com/stretchr/testify/assert"
)

func TestNextIDEmpty(t *testing.T) {
	assert.Equal(t, 0, ids.NextID(nil))
	assert.Equal(t, 0, ids.NextID([]string{}))
}

func TestNextIDDense(t *testing.T) {
	assert.Equal(t, 3, ids.NextID([]string{"0", "1", "2"}))
}

func TestNextIDSparse(t *testing.T) {
	// A gap does not get reused; the allocator only guarantees no collision.
	assert.Equal(t, 8, ids.NextID([]string{"0", "7", "3"}))
}

func TestNextIDIgnoresNonNumeric(t *testing.T) {
	assert.Equal(t, 2, ids.NextID([]string{"a128000", "1", "s10000_chi"}))
	assert.Equal(t, 0, ids.NextID([]string{"v5000000", "audio_en"}))
}

type numbered struct {
	ID string
}

func TestRenumberDense(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 17} {
		items := make([]numbered, n)
		for i := range items {
			items[i].ID = "x" + strconv.Itoa(i*10)
		}

		ids.Renumber(items, func(it *numbered, id string) { it.ID = id })

		for i := range items {
			assert.Equal(t, strconv.Itoa(i), items[i].ID)
		}
	}
}
