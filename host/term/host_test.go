package term

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambient/engine"
)

func newHost(t *testing.T, opts Options) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t, 80, 24)
	opts.Config = engine.DefaultConfig()
	opts.Rand = rand.New(rand.NewPCG(3, 5))
	return NewHost(screen, opts), screen
}

func TestHostQuitKeys(t *testing.T) {
	host, _ := newHost(t, Options{})

	assert.False(t, host.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, host.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, host.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, host.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestHostResize(t *testing.T) {
	host, _ := newHost(t, Options{})
	require.NoError(t, host.engine.Attach(host.region))
	defer host.engine.Detach()

	assert.True(t, host.handle(tcell.NewEventResize(120, 40)))

	w, h := host.region.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 80, h)

	stats := host.engine.Stats()
	assert.Equal(t, 120, stats.Width)
	assert.Equal(t, 80, stats.Height)
	sw, sh := host.engine.Surface().Size()
	assert.Equal(t, 120, sw)
	assert.Equal(t, 80, sh)
}

func TestHostFocusPausesWhenIdlePauseIsOn(t *testing.T) {
	host, _ := newHost(t, Options{IdlePause: true})
	require.NoError(t, host.engine.Attach(host.region))
	defer host.engine.Detach()

	host.handle(tcell.NewEventFocus(false))
	host.loop.Pump()
	host.loop.Pump()
	assert.Equal(t, uint64(2), host.engine.Stats().Skipped)

	host.handle(tcell.NewEventFocus(true))
	host.loop.Pump()
	assert.Equal(t, uint64(1), host.engine.Stats().Frames)
}

func TestHostRunStopsOnContext(t *testing.T) {
	host, screen := newHost(t, Options{FPS: 100})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, host.Run(ctx))

	assert.Equal(t, engine.Disposed, host.engine.State())
	assert.Greater(t, host.loop.Pumps(), uint64(0))

	// something was drawn before the engine went away
	drawn := 0
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == upperHalf || r == lowerHalf {
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, 0)
}

func TestHostRunStopsOnQuit(t *testing.T) {
	host, screen := newHost(t, Options{})
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	require.NoError(t, host.Run(ctx))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, engine.Disposed, host.engine.State())
}
