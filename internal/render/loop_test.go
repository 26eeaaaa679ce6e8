package render

import (
	"context"
	"errors"
	"testing"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPresent = errors.New("present failed")

// recordingSurface wraps a Frame and counts host calls.
type recordingSurface struct {
	*Frame
	presented []string
	clears    int
	failAfter int
}

func (r *recordingSurface) Present() error {
	if r.failAfter > 0 && len(r.presented) >= r.failAfter {
		return errPresent
	}
	r.presented = append(r.presented, r.String())
	return nil
}

func (r *recordingSurface) Clear() error {
	r.clears++
	return r.Frame.Clear()
}

func pyramidKeys() Keymap {
	return Keymap{
		"w": ActionRotateXPos,
		"s": ActionRotateXNeg,
		"=": ActionScaleUp,
		"q": ActionQuit,
	}
}

func newPyramidLoop(t *testing.T, input Input, surface Surface) (*Loop, *WireframeScene) {
	t.Helper()
	w, h := surface.Size()
	scene, err := NewWireframeScene(Pyramid(), NewRenderState(w, h, 10, 1, 0.1))
	require.NoError(t, err)
	return &Loop{
		Scene:   scene,
		Surface: surface,
		Input:   input,
		Keys:    pyramidKeys(),
		Marker:  '.',
	}, scene
}

func TestFrameAppliesOneAction(t *testing.T) {
	surface := &recordingSurface{Frame: NewFrame(40, 20)}
	loop, scene := newPyramidLoop(t, &KeyQueue{}, surface)

	done, err := loop.Frame(opt.Some[Key]("w"))
	require.NoError(t, err)
	assert.False(t, done)
	assert.InDelta(t, 0.1, scene.State.AngleX, epsilon)
	assert.Len(t, surface.presented, 1)
	assert.Equal(t, uint64(1), loop.Frames())

	done, err = loop.Frame(opt.None[Key]())
	require.NoError(t, err)
	assert.False(t, done)
	assert.InDelta(t, 0.1, scene.State.AngleX, epsilon)

	// Unbound keys are ignored.
	_, err = loop.Frame(opt.Some[Key]("z"))
	require.NoError(t, err)
	assert.InDelta(t, 0.1, scene.State.AngleX, epsilon)
	assert.Len(t, surface.presented, 3)
}

func TestFrameQuitSkipsDrawing(t *testing.T) {
	surface := &recordingSurface{Frame: NewFrame(40, 20)}
	loop, _ := newPyramidLoop(t, &KeyQueue{}, surface)

	done, err := loop.Frame(opt.Some[Key]("q"))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, surface.presented)
	assert.Empty(t, surface.Lit())
}

func TestRunUntilQuit(t *testing.T) {
	input := &KeyQueue{}
	for _, k := range []Key{"w", "w", "=", "s", "q"} {
		input.Push(k)
	}
	surface := &recordingSurface{Frame: NewFrame(40, 20)}
	loop, scene := newPyramidLoop(t, input, surface)

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, 0, input.Len())
	assert.Len(t, surface.presented, 4)
	assert.Equal(t, 4, surface.clears)
	assert.InDelta(t, 0.1, scene.State.AngleX, epsilon)
	assert.Equal(t, 11.0, scene.State.Scale)
	// Frames are cleared between presents.
	assert.Empty(t, surface.Lit())
}

func TestRunStopsOnCancel(t *testing.T) {
	surface := &recordingSurface{Frame: NewFrame(40, 20)}
	loop, _ := newPyramidLoop(t, &KeyQueue{}, surface)
	loop.Interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestRunPropagatesSurfaceError(t *testing.T) {
	surface := &recordingSurface{Frame: NewFrame(40, 20), failAfter: 2}
	loop, _ := newPyramidLoop(t, &KeyQueue{}, surface)

	err := loop.Run(context.Background())
	require.ErrorIs(t, err, errPresent)
	assert.Len(t, surface.presented, 2)
}

func TestRunPropagatesWriteError(t *testing.T) {
	surface := &recordingSurface{Frame: NewFrame(1, 20)}
	loop, _ := newPyramidLoop(t, &KeyQueue{}, surface)

	err := loop.Run(context.Background())
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Empty(t, surface.presented)
}

func TestPolygonLoopCompoundsPerFrame(t *testing.T) {
	input := &KeyQueue{}
	for i := 0; i < 3; i++ {
		input.Push("x")
	}
	input.Push("q")

	scene := NewPolygonScene(square(0.05, 2), PolygonFactors{})
	loop := &Loop{
		Scene:   scene,
		Surface: NewFrame(80, 24),
		Input:   input,
		Keys:    Keymap{"q": ActionQuit},
		Marker:  '.',
	}
	require.NoError(t, loop.Run(context.Background()))
	assert.InDelta(t, 0.4, scene.Polygon.Velocity, epsilon)
	assert.InDelta(t, 0.35, scene.Polygon.Vertices[0].Angle, epsilon)
}
