package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *Controller {
	return NewController(3*time.Second, true, nil)
}

var gallery = []string{"a.jpg", "b.jpg", "c.jpg"}

func TestStartFromIndex(t *testing.T) {
	c := newTestController()

	gen, ok := c.Start(gallery, 1)
	require.True(t, ok)

	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, float64(0), c.Progress())

	// First advance moves to the image after the start index.
	require.True(t, c.AdvanceTick(gen))
	assert.Equal(t, 2, c.Index())

	// Wraps around the end of the gallery.
	require.True(t, c.AdvanceTick(gen))
	assert.Equal(t, 0, c.Index())
}

func TestStartClampsOutOfRangeIndex(t *testing.T) {
	c := newTestController()

	_, ok := c.Start(gallery, 17)
	require.True(t, ok)
	assert.Equal(t, 0, c.Index())

	_, ok = c.Start(gallery, -1)
	require.True(t, ok)
	assert.Equal(t, 0, c.Index())
}

func TestStartRefusesShortGalleries(t *testing.T) {
	c := newTestController()

	_, ok := c.Start(nil, 0)
	assert.False(t, ok)

	_, ok = c.Start([]string{"only.jpg"}, 0)
	assert.False(t, ok)
	assert.Equal(t, StateIdle, c.State())
}

func TestStartTwiceLeavesOneLiveSession(t *testing.T) {
	c := newTestController()

	gen1, ok := c.Start(gallery, 0)
	require.True(t, ok)

	gen2, ok := c.Start(gallery, 0)
	require.True(t, ok)
	require.NotEqual(t, gen1, gen2)

	// Ticks from the first session are stale and apply nothing.
	assert.False(t, c.AdvanceTick(gen1))
	assert.False(t, c.ProgressTick(gen1))
	assert.Equal(t, 0, c.Index())

	// The second session's ticks still apply.
	assert.True(t, c.AdvanceTick(gen2))
	assert.Equal(t, 1, c.Index())
}

func TestAdvanceResetsProgress(t *testing.T) {
	c := newTestController()
	gen, _ := c.Start(gallery, 0)

	for i := 0; i < 10; i++ {
		require.True(t, c.ProgressTick(gen))
	}
	assert.Greater(t, c.Progress(), float64(0))

	require.True(t, c.AdvanceTick(gen))
	assert.Equal(t, float64(0), c.Progress())
}

func TestProgressGrowsMonotonicallyAndClamps(t *testing.T) {
	c := NewController(500*time.Millisecond, true, nil)
	gen, _ := c.Start(gallery, 0)

	// 500ms / 50ms = 10 ticks to full; drive past that.
	prev := float64(0)
	for i := 0; i < 25; i++ {
		require.True(t, c.ProgressTick(gen))
		assert.GreaterOrEqual(t, c.Progress(), prev)
		prev = c.Progress()
	}
	assert.Equal(t, float64(100), c.Progress())
}

func TestProgressStep(t *testing.T) {
	c := newTestController()
	// 3s interval, 50ms ticks: 60 ticks per interval.
	assert.InDelta(t, 100.0/60.0, c.ProgressStep(), 1e-9)
}

func TestPauseKeepsIndexAndProgress(t *testing.T) {
	c := newTestController()
	gen, _ := c.Start(gallery, 0)

	require.True(t, c.AdvanceTick(gen))
	for i := 0; i < 5; i++ {
		require.True(t, c.ProgressTick(gen))
	}
	idx, prog := c.Index(), c.Progress()

	c.Pause()
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, idx, c.Index())
	assert.Equal(t, prog, c.Progress())

	// The paused epoch's ticks are dead.
	assert.False(t, c.AdvanceTick(gen))
	assert.False(t, c.ProgressTick(gen))
}

func TestResumeRestartsProgressAtZero(t *testing.T) {
	c := newTestController()
	gen, _ := c.Start(gallery, 0)

	for i := 0; i < 5; i++ {
		require.True(t, c.ProgressTick(gen))
	}
	c.Pause()

	gen2, ok := c.Resume()
	require.True(t, ok)
	assert.NotEqual(t, gen, gen2)
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, float64(0), c.Progress())
}

func TestResumeOnlyFromPaused(t *testing.T) {
	c := newTestController()

	_, ok := c.Resume()
	assert.False(t, ok, "idle controller must not resume")

	c.Start(gallery, 0)
	_, ok = c.Resume()
	assert.False(t, ok, "running controller must not resume")
}

func TestStopKillsSession(t *testing.T) {
	c := newTestController()
	gen, _ := c.Start(gallery, 0)

	c.Stop()
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, float64(0), c.Progress())

	assert.False(t, c.AdvanceTick(gen))
	assert.False(t, c.ProgressTick(gen))

	// A stopped session cannot be resumed, only restarted.
	_, ok := c.Resume()
	assert.False(t, ok)

	_, ok = c.Start(gallery, 0)
	assert.True(t, ok)
}

func TestJumpToPausesAtTarget(t *testing.T) {
	c := newTestController()
	gen, _ := c.Start(gallery, 0)

	require.True(t, c.JumpTo(2))
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, float64(0), c.Progress())
	assert.Equal(t, StatePaused, c.State())

	// Old timers are dead after the jump.
	assert.False(t, c.AdvanceTick(gen))

	// The restart path resumes from the jumped-to image.
	gen2, ok := c.Resume()
	require.True(t, ok)
	require.True(t, c.AdvanceTick(gen2))
	assert.Equal(t, 0, c.Index())
}

func TestJumpToRejectsOutOfRange(t *testing.T) {
	c := newTestController()
	c.Start(gallery, 0)

	assert.False(t, c.JumpTo(-1))
	assert.False(t, c.JumpTo(3))
	assert.Equal(t, 0, c.Index())
}

func TestDisabledRefusesStartAndResume(t *testing.T) {
	c := NewController(3*time.Second, false, nil)

	_, ok := c.Start(gallery, 0)
	assert.False(t, ok)

	c.SetEnabled(true)
	c.Start(gallery, 0)
	c.Pause()
	c.SetEnabled(false)

	_, ok = c.Resume()
	assert.False(t, ok)
}

func TestDisableDoesNotCancelArmedSession(t *testing.T) {
	c := newTestController()
	gen, ok := c.Start(gallery, 0)
	require.True(t, ok)

	// Flipping the flag mid-session leaves the armed timers running
	// until their natural end.
	c.SetEnabled(false)

	assert.True(t, c.AdvanceTick(gen))
	assert.Equal(t, 1, c.Index())
	assert.True(t, c.ProgressTick(gen))
}

func TestDefaultIntervalFallback(t *testing.T) {
	c := NewController(0, true, nil)
	assert.Equal(t, DefaultInterval, c.Interval())
}

func TestImageAccessor(t *testing.T) {
	c := newTestController()
	assert.Equal(t, "", c.Image())

	gen, _ := c.Start(gallery, 0)
	assert.Equal(t, "a.jpg", c.Image())

	c.AdvanceTick(gen)
	assert.Equal(t, "b.jpg", c.Image())
}
