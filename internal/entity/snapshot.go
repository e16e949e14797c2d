package entity

import "strconv"

// Snapshot is the full persisted state of the bot: every conversation's
// session plus the feed watermark. The watermark is the highest message id
// ever incorporated into a persisted snapshot; empty means none yet.
type Snapshot struct {
	Sessions  map[string]*GameSession `json:"sessions"`
	Watermark string                  `json:"watermark,omitempty"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{Sessions: make(map[string]*GameSession)}
}

// ActiveGameCount counts sessions still in play.
func (that *Snapshot) ActiveGameCount() int {
	count := 0
	for _, session := range that.Sessions {
		if session.IsActive() {
			count++
		}
	}
	return count
}

// AdvanceWatermark raises the watermark to id if id is numerically newer.
// An unparseable stored watermark is treated as zero, so a damaged value
// heals itself on the next batch.
func (that *Snapshot) AdvanceWatermark(id string) {
	if ParseMessageID(id) > ParseMessageID(that.Watermark) {
		that.Watermark = id
	}
}

// ParseMessageID converts a platform message id to a comparable number.
// Absent or malformed ids compare as zero.
func ParseMessageID(id string) int64 {
	if id == "" {
		return 0
	}

	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}

	return n
}
