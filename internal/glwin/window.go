// Package glwin hosts a render.Loop in an OpenGL window. The character grid
// is drawn as one square point per lit cell.
package glwin

import (
	"context"
	"fmt"
	"runtime"

	"termwire/internal/config"
	"termwire/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

type Options struct {
	Cols, Rows int
	// CellSize is the pixel size of one grid cell.
	CellSize int
	Title    string
}

// Window is a render.Surface and render.Input backed by a GLFW window.
type Window struct {
	*render.Frame
	options Options

	window *glfw.Window
	keys   render.KeyQueue

	program     uint32
	vao, vbo    uint32
	mvpUniform  int32
	sizeUniform int32

	sum      uint64
	uploaded bool
	points   int32

	frameCount  int
	lastFpsTime float64
}

func Open(options Options) (*Window, error) {
	if options.Cols <= 0 || options.Rows <= 0 || options.CellSize <= 0 {
		return nil, fmt.Errorf("invalid window grid %dx%d cell %d", options.Cols, options.Rows, options.CellSize)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(options.Cols*options.CellSize, options.Rows*options.CellSize, options.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize gl: %w", err)
	}
	log.Info().Str("version", gl.GoStr(gl.GetString(gl.VERSION))).Msg("opengl ready")

	program, err := newProgram()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	w := &Window{
		Frame:       render.NewFrame(options.Cols, options.Rows),
		options:     options,
		window:      window,
		program:     program,
		lastFpsTime: glfw.GetTime(),
	}
	w.setup()

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if name, ok := keyName(key, scancode); ok {
			w.keys.Push(name)
		}
	})

	return w, nil
}

func (w *Window) setup() {
	gl.UseProgram(w.program)

	w.mvpUniform = gl.GetUniformLocation(w.program, gl.Str("mvp\x00"))
	w.sizeUniform = gl.GetUniformLocation(w.program, gl.Str("pointSize\x00"))

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)

	cellAttrib := uint32(gl.GetAttribLocation(w.program, gl.Str("cell\x00")))
	gl.EnableVertexAttribArray(cellAttrib)
	gl.VertexAttribPointer(cellAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	// Row 0 at the top, one unit per cell.
	mvp := mgl32.Ortho2D(0, float32(w.options.Cols), float32(w.options.Rows), 0)
	gl.UniformMatrix4fv(w.mvpUniform, 1, false, &mvp[0])
	gl.Uniform1f(w.sizeUniform, float32(w.options.CellSize))

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)
}

// Poll returns the next key pressed in the window.
func (w *Window) Poll() opt.Option[render.Key] {
	return w.keys.Poll()
}

// Present uploads the lit cells when they changed since the last frame,
// draws them and pumps window events.
func (w *Window) Present() error {
	if sum := w.Frame.Sum64(); sum != w.sum || !w.uploaded {
		w.sum = sum
		w.uploaded = true
		w.upload(w.Frame.Lit())
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	if w.points > 0 {
		gl.DrawArrays(gl.POINTS, 0, w.points)
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("draw cells: gl error 0x%x", code)
	}

	w.window.SwapBuffers()
	glfw.PollEvents()

	w.frameCount++
	if now := glfw.GetTime(); now-w.lastFpsTime >= 1.0 {
		w.window.SetTitle(fmt.Sprintf("%s | FPS: %d", w.options.Title, w.frameCount))
		w.frameCount = 0
		w.lastFpsTime = now
	}
	return nil
}

func (w *Window) upload(lit []render.Cell) {
	w.points = int32(len(lit))
	if len(lit) == 0 {
		return
	}
	vertices := make([]float32, 0, 2*len(lit))
	for _, c := range lit {
		vertices = append(vertices, float32(c.Col), float32(c.Row))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
}

// OnClose registers fn to run when the user closes the window.
func (w *Window) OnClose(fn func()) {
	w.window.SetCloseCallback(func(*glfw.Window) { fn() })
}

func (w *Window) Close() {
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	w.window.Destroy()
	glfw.Terminate()
}

// Run animates variant in a new window until the quit key or the window is
// closed.
func Run(ctx context.Context, cfg *config.Config, variant config.Variant, options Options) error {
	w, err := Open(options)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.OnClose(cancel)

	loop, err := cfg.Loop(variant, w, w)
	if err != nil {
		return err
	}

	log.Info().
		Int("cols", options.Cols).
		Int("rows", options.Rows).
		Str("variant", string(variant)).
		Msg("window surface ready")

	if err := loop.Run(ctx); err != nil {
		return err
	}
	log.Info().Uint64("frames", loop.Frames()).Msg("window closed")
	return nil
}
