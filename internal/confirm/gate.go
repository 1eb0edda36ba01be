// Package confirm implements the two-step gate in front of destructive
// record operations: the first request for a target arms the gate, a second
// request for the same target within the window confirms it. Any other
// interaction, a different target, or the timer expiring drops the gate
// back to idle without deleting anything.
package confirm

import (
	"sync"
	"time"
)

// DefaultWindow is how long an armed confirmation stays valid.
const DefaultWindow = 5 * time.Second

// Target identifies what a pending confirmation would delete: a single
// record by id, or the whole collection when All is set.
type Target struct {
	All bool
	ID  int64
}

// TargetAll is the clear-all target.
var TargetAll = Target{All: true}

// TargetRecord returns the target for one record.
func TargetRecord(id int64) Target {
	return Target{ID: id}
}

// Gate holds at most one pending confirmation across both scopes.
// Safe for concurrent use.
type Gate struct {
	mu      sync.Mutex
	window  time.Duration
	pending *Target
	timer   *time.Timer
	gen     uint64
}

// New creates a gate with the given confirmation window.
func New(window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{window: window}
}

// Window reports the configured confirmation window.
func (g *Gate) Window() time.Duration {
	return g.window
}

// Request advances the gate for the given target. It returns true when the
// target was already pending (the caller should now perform the deletion;
// the gate is idle again). Otherwise the target becomes the sole pending
// confirmation, replacing any previous one, and the auto-reset timer starts.
func (g *Gate) Request(t Target) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending != nil && *g.pending == t {
		g.clearLocked()
		return true
	}

	g.clearLocked()
	g.pending = &t
	gen := g.gen
	g.timer = time.AfterFunc(g.window, func() { g.expire(gen) })
	return false
}

// Reset drops any pending confirmation without deleting anything. Called on
// every non-destructive interaction.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearLocked()
}

// Pending reports the currently armed target, if any.
func (g *Gate) Pending() (Target, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return Target{}, false
	}
	return *g.pending, true
}

// expire resets the gate when the timer for generation gen fires. A timer
// from a superseded confirmation must not touch the current one, so the
// generation is checked under the lock.
func (g *Gate) expire(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen != gen {
		return
	}
	g.clearLocked()
}

func (g *Gate) clearLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.pending = nil
	g.gen++
}
