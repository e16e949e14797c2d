package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_AdvanceWatermark(t *testing.T) {
	t.Run("Advances from empty to the first id", func(t *testing.T) {
		snapshot := NewSnapshot()

		snapshot.AdvanceWatermark("100")

		assert.Equal(t, "100", snapshot.Watermark)
	})

	t.Run("Never decreases", func(t *testing.T) {
		// Given: a snapshot already at id 200
		snapshot := NewSnapshot()
		snapshot.Watermark = "200"

		// When: an older id arrives
		snapshot.AdvanceWatermark("150")

		// Then: the watermark keeps its value
		assert.Equal(t, "200", snapshot.Watermark)
	})

	t.Run("Compares numerically, not lexically", func(t *testing.T) {
		snapshot := NewSnapshot()
		snapshot.Watermark = "99"

		snapshot.AdvanceWatermark("100")

		assert.Equal(t, "100", snapshot.Watermark)
	})

	t.Run("Treats a damaged watermark as zero", func(t *testing.T) {
		// Given: a stored watermark that is not a number
		snapshot := NewSnapshot()
		snapshot.Watermark = "not-a-number"

		// When: any valid id arrives
		snapshot.AdvanceWatermark("7")

		// Then: the watermark heals
		assert.Equal(t, "7", snapshot.Watermark)
	})
}

func TestParseMessageID(t *testing.T) {
	assert.Equal(t, int64(0), ParseMessageID(""))
	assert.Equal(t, int64(0), ParseMessageID("abc"))
	assert.Equal(t, int64(42), ParseMessageID("42"))
}

func TestSnapshot_ActiveGameCount(t *testing.T) {
	// Given: one active and one ended session
	snapshot := NewSnapshot()
	snapshot.Sessions["conv-1"] = NewGameSession()
	ended := NewGameSession()
	ended.Status = StatusEnded
	snapshot.Sessions["conv-2"] = ended

	// Then: only the active one counts
	assert.Equal(t, 1, snapshot.ActiveGameCount())
}
