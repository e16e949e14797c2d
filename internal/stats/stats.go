package stats

import (
	"sync/atomic"
	"time"
)

// Bot status values reported on the health surface.
const (
	StatusInitializing = "initializing"
	StatusRunning      = "running"
	StatusError        = "error"
)

// Stats is the process-wide counter set. The poller is the only writer;
// the health surface only reads, but every field is atomic so a second
// writer cannot corrupt anything either.
type Stats struct {
	startedAt time.Time

	mentionsProcessed atomic.Int64
	activeGames       atomic.Int64

	lastCheck      atomic.Value // time.Time
	status         atomic.Value // string
	statusError    atomic.Value // string
	storeBackend   atomic.Value // string
	storeConnected atomic.Bool
}

func New() *Stats {
	s := &Stats{startedAt: time.Now()}
	s.status.Store(StatusInitializing)
	s.statusError.Store("")
	s.storeBackend.Store("")
	return s
}

func (that *Stats) StartedAt() time.Time { return that.startedAt }

func (that *Stats) Uptime() time.Duration { return time.Since(that.startedAt) }

func (that *Stats) MentionProcessed() { that.mentionsProcessed.Add(1) }

func (that *Stats) MentionsProcessed() int64 { return that.mentionsProcessed.Load() }

func (that *Stats) SetActiveGames(n int) { that.activeGames.Store(int64(n)) }

func (that *Stats) ActiveGames() int64 { return that.activeGames.Load() }

func (that *Stats) MarkCheck() { that.lastCheck.Store(time.Now()) }

func (that *Stats) LastCheck() (time.Time, bool) {
	t, ok := that.lastCheck.Load().(time.Time)
	return t, ok
}

func (that *Stats) SetStatus(status string) {
	that.status.Store(status)
	if status != StatusError {
		that.statusError.Store("")
	}
}

func (that *Stats) SetError(detail string) {
	that.status.Store(StatusError)
	that.statusError.Store(detail)
}

func (that *Stats) Status() string { return that.status.Load().(string) }

func (that *Stats) StatusError() string { return that.statusError.Load().(string) }

func (that *Stats) SetStore(backend string, connected bool) {
	that.storeBackend.Store(backend)
	that.storeConnected.Store(connected)
}

func (that *Stats) StoreBackend() string { return that.storeBackend.Load().(string) }

func (that *Stats) StoreConnected() bool { return that.storeConnected.Load() }
