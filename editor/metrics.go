package editor

import (
	"sync/atomic"
	"time"
)

// Metrics holds dispatch counters for one session. Counters are atomic
// so hosts may read a Snapshot from any goroutine.
type Metrics struct {
	transactions   atomic.Uint64
	docChanges     atomic.Uint64
	effects        atomic.Uint64
	handlerPanics  atomic.Uint64
	listenerPanics atomic.Uint64
	dispatchNs     atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of a session's counters.
type MetricsSnapshot struct {
	Transactions   uint64
	DocChanges     uint64
	Effects        uint64
	HandlerPanics  uint64
	ListenerPanics uint64
	AvgDispatchNs  int64
}

// record updates the counters for one applied transaction.
func (m *Metrics) record(u *Update, elapsed time.Duration) {
	m.transactions.Add(1)
	if u.DocChanged() {
		m.docChanges.Add(1)
	}
	m.effects.Add(uint64(len(u.Effects)))
	m.dispatchNs.Add(elapsed.Nanoseconds())
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	tx := m.transactions.Load()
	var avg int64
	if tx > 0 {
		avg = m.dispatchNs.Load() / int64(tx)
	}
	return MetricsSnapshot{
		Transactions:   tx,
		DocChanges:     m.docChanges.Load(),
		Effects:        m.effects.Load(),
		HandlerPanics:  m.handlerPanics.Load(),
		ListenerPanics: m.listenerPanics.Load(),
		AvgDispatchNs:  avg,
	}
}
