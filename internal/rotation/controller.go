// Package rotation drives the auto-rotating image gallery of the
// product detail modal: one "advance" timer that moves to the next
// image every interval, and one "progress" timer that refills the
// progress bar in 50ms steps between advances.
//
// Timers are cancelled by epoch, not by handle: every state transition
// bumps a generation counter, and tick callbacks carry the generation
// they were armed with. A tick whose generation is stale is dropped and
// never re-armed, so a session can be superseded any number of times
// while leaving exactly one live advance/progress pair.
package rotation

import (
	"log/slog"
	"time"
)

// State is the lifecycle of one rotation session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const (
	// DefaultInterval is the advance period when none is configured.
	DefaultInterval = 3 * time.Second

	// ProgressTickEvery is the progress bar refresh period.
	ProgressTickEvery = 50 * time.Millisecond

	// RestartDelay is the pause between a manual thumbnail jump and the
	// session restart, covering the progress reset transition.
	RestartDelay = 150 * time.Millisecond
)

// Controller is the rotation state machine for one modal instance.
// It is driven exclusively from the UI turn; ticks arrive as messages,
// so no locking is needed.
type Controller struct {
	logger *slog.Logger

	interval time.Duration
	enabled  bool

	state    State
	images   []string
	index    int
	progress float64 // 0..100

	gen uint64 // Current timer epoch; stale ticks are dropped
}

// NewController creates a controller with the given advance interval.
func NewController(interval time.Duration, enabled bool, logger *slog.Logger) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:   logger,
		interval: interval,
		enabled:  enabled,
		state:    StateIdle,
	}
}

// Interval returns the advance period.
func (c *Controller) Interval() time.Duration { return c.interval }

// State returns the current session state.
func (c *Controller) State() State { return c.state }

// Index returns the currently displayed image index.
func (c *Controller) Index() int { return c.index }

// Progress returns the displayed progress percentage (0..100).
func (c *Controller) Progress() float64 { return c.progress }

// Gen returns the current timer epoch. Ticks armed for an older epoch
// must be dropped.
func (c *Controller) Gen() uint64 { return c.gen }

// Image returns the URL of the currently displayed image, or "".
func (c *Controller) Image() string {
	if c.index < 0 || c.index >= len(c.images) {
		return ""
	}
	return c.images[c.index]
}

// Images returns the session's image list.
func (c *Controller) Images() []string { return c.images }

// Enabled reports the global rotation flag.
func (c *Controller) Enabled() bool { return c.enabled }

// SetEnabled flips the global flag. Disabling does not cancel an
// already-armed session; it only refuses the next Start/Resume.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Start arms a new session over images, cancelling any previous one by
// bumping the epoch before the new timers exist. Products with fewer
// than two images never start a session. Returns the epoch the caller
// must arm its timers with, and whether a session started.
func (c *Controller) Start(images []string, startIndex int) (uint64, bool) {
	// Invalidate any previous session's timers first.
	c.gen++

	if !c.enabled || len(images) < 2 {
		return c.gen, false
	}
	if startIndex < 0 || startIndex >= len(images) {
		startIndex = 0
	}

	c.images = images
	c.index = startIndex
	c.progress = 0
	c.state = StateRunning

	c.logger.Debug("rotation started", "images", len(images), "start", startIndex, "gen", c.gen)
	return c.gen, true
}

// Pause cancels both timers without touching index or progress.
func (c *Controller) Pause() {
	if c.state != StateRunning {
		return
	}
	c.gen++
	c.state = StatePaused
	c.logger.Debug("rotation paused", "index", c.index, "progress", c.progress)
}

// Resume re-arms both timers from the current index. Partial progress
// is not preserved: the bar restarts at 0, matching the storefront's
// hover-leave behavior. Refused when rotation is disabled or the
// session is not paused.
func (c *Controller) Resume() (uint64, bool) {
	if !c.enabled || c.state != StatePaused {
		return c.gen, false
	}
	c.gen++
	c.progress = 0
	c.state = StateRunning
	c.logger.Debug("rotation resumed", "index", c.index, "gen", c.gen)
	return c.gen, true
}

// Stop cancels both timers and resets the progress display.
func (c *Controller) Stop() {
	c.gen++
	c.progress = 0
	if c.state != StateIdle {
		c.state = StateStopped
	}
	c.logger.Debug("rotation stopped")
}

// JumpTo selects an image manually: timers are cancelled and the
// caller restarts the session after RestartDelay via Resume.
func (c *Controller) JumpTo(index int) bool {
	if index < 0 || index >= len(c.images) {
		return false
	}
	c.gen++
	c.index = index
	c.progress = 0
	c.state = StatePaused
	c.logger.Debug("rotation jump", "index", index)
	return true
}

// AdvanceTick applies one advance timer firing. Stale epochs and
// non-running states are no-ops. Reports whether the tick applied, in
// which case the caller re-arms the next advance tick for the same
// epoch.
func (c *Controller) AdvanceTick(gen uint64) bool {
	if gen != c.gen || c.state != StateRunning || len(c.images) == 0 {
		return false
	}
	c.index = (c.index + 1) % len(c.images)
	c.progress = 0
	return true
}

// ProgressTick applies one progress timer firing: the bar grows by
// 100/(interval/50ms) percent, clamped at 100. Stale epochs are
// dropped.
func (c *Controller) ProgressTick(gen uint64) bool {
	if gen != c.gen || c.state != StateRunning {
		return false
	}
	c.progress += c.ProgressStep()
	if c.progress > 100 {
		c.progress = 100
	}
	return true
}

// ProgressStep returns the per-tick progress increment.
func (c *Controller) ProgressStep() float64 {
	ticksPerInterval := float64(c.interval) / float64(ProgressTickEvery)
	if ticksPerInterval <= 0 {
		return 100
	}
	return 100 / ticksPerInterval
}
