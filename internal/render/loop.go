package render

import (
	"context"
	"fmt"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// Scene is an animated shape driven by a Loop.
type Scene interface {
	// Apply mutates the scene for a; it reports false when a does not
	// apply to this scene.
	Apply(a Action) bool
	// Render rasterizes every edge onto s.
	Render(s Surface, marker rune) error
	// Advance steps per-frame dynamics after the frame is drawn.
	Advance()
	// Status is a one-line summary of the scene parameters.
	Status() string
}

// Loop owns a scene and the surface it draws on.
type Loop struct {
	Scene    Scene
	Surface  Surface
	Input    Input
	Keys     Keymap
	Marker   rune
	Interval time.Duration

	frames uint64
}

func (l *Loop) Frames() uint64 {
	return l.frames
}

// Frame runs one frame: apply the key's action, draw, present, then advance
// the scene. It returns done=true without drawing when the key maps to
// ActionQuit.
func (l *Loop) Frame(key opt.Option[Key]) (done bool, err error) {
	if opt.IsSome(key) {
		action := l.Keys.Resolve(key.Value)
		if action == ActionQuit {
			log.Debug().Uint64("frame", l.frames).Msg("quit requested")
			return true, nil
		}
		if action != ActionNone && l.Scene.Apply(action) {
			log.Debug().
				Str("key", string(key.Value)).
				Stringer("action", action).
				Msg(l.Scene.Status())
		}
	}

	if err := l.Scene.Render(l.Surface, l.Marker); err != nil {
		return false, fmt.Errorf("render frame %d: %w", l.frames, err)
	}
	if err := l.Surface.Present(); err != nil {
		return false, fmt.Errorf("present frame %d: %w", l.frames, err)
	}
	l.Scene.Advance()
	l.frames++
	return false, nil
}

// Run polls input and renders frames until the quit action, cancellation of
// ctx, or a surface error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		done, err := l.Frame(l.Input.Poll())
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.Interval):
		}

		if err := l.Surface.Clear(); err != nil {
			return fmt.Errorf("clear frame %d: %w", l.frames, err)
		}
	}
}
