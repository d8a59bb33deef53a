package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLruReplacer(t *testing.T) {
	t.Run("chooses the least recently used frame", func(t *testing.T) {
		lru := NewLruReplacer()

		for _, id := range []int{1, 2, 3} {
			lru.RecordAccess(id)
			lru.SetEvictable(id, true)
		}

		victim, ok := lru.ChooseVictim()
		assert.True(t, ok)
		assert.Equal(t, 1, victim)

		victim, ok = lru.ChooseVictim()
		assert.True(t, ok)
		assert.Equal(t, 2, victim)
	})

	t.Run("skips non evictable frames", func(t *testing.T) {
		lru := NewLruReplacer()

		lru.RecordAccess(1)
		lru.RecordAccess(2)
		lru.SetEvictable(1, false)
		lru.SetEvictable(2, true)

		victim, ok := lru.ChooseVictim()
		assert.True(t, ok)
		assert.Equal(t, 2, victim)
	})

	t.Run("recording an access refreshes recency", func(t *testing.T) {
		lru := NewLruReplacer()

		for _, id := range []int{1, 2, 3} {
			lru.RecordAccess(id)
			lru.SetEvictable(id, true)
		}

		// frame 1 is hot again, so frame 2 becomes the victim
		lru.RecordAccess(1)

		victim, ok := lru.ChooseVictim()
		assert.True(t, ok)
		assert.Equal(t, 2, victim)
	})

	t.Run("reports no victim when nothing is evictable", func(t *testing.T) {
		lru := NewLruReplacer()

		victim, ok := lru.ChooseVictim()
		assert.False(t, ok)
		assert.Equal(t, INVALID_FRAME_ID, victim)

		lru.RecordAccess(1)

		victim, ok = lru.ChooseVictim()
		assert.False(t, ok)
		assert.Equal(t, INVALID_FRAME_ID, victim)
	})

	t.Run("size tracks evictable frames only", func(t *testing.T) {
		lru := NewLruReplacer()

		lru.RecordAccess(1)
		lru.RecordAccess(2)
		assert.Equal(t, 0, lru.Size())

		lru.SetEvictable(1, true)
		lru.SetEvictable(2, true)
		assert.Equal(t, 2, lru.Size())

		lru.SetEvictable(2, false)
		assert.Equal(t, 1, lru.Size())

		_, _ = lru.ChooseVictim()
		assert.Equal(t, 0, lru.Size())
	})

	t.Run("pool records fetches with the replacer", func(t *testing.T) {
		lru := NewLruReplacer()
		pool := NewBufferPool(NewFrameStorage(2), lru, &stubDisk{})

		frame, err := pool.GetPage(5)
		assert.NoError(t, err)

		// freshly fetched frames are pinned, never eviction candidates
		_, ok := lru.nodeStore[frame.Id()]
		assert.True(t, ok)
		assert.Equal(t, 0, lru.Size())

		victim, ok := lru.ChooseVictim()
		assert.False(t, ok)
		assert.Equal(t, INVALID_FRAME_ID, victim)
	})
}
