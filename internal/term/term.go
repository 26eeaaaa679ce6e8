// Package term hosts a render.Loop in a terminal using bubbletea.
//
// bubbletea owns the terminal: key presses arrive as messages and are queued,
// and a tick message drives one frame at a time, so the loop only ever runs
// on the Update goroutine.
package term

import (
	"fmt"
	"time"

	"termwire/internal/config"
	"termwire/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

var statusStyle = lipgloss.NewStyle().Faint(true)

// TickMsg paces frames.
type TickMsg time.Time

// Surface is a render.Frame that snapshots itself for View on Present.
type Surface struct {
	*render.Frame
	view string
	sum  uint64
	// Presents counts snapshots actually taken; identical frames are
	// skipped.
	Presents int
}

func NewSurface(width, height int) *Surface {
	return &Surface{Frame: render.NewFrame(width, height)}
}

func (s *Surface) Present() error {
	sum := s.Frame.Sum64()
	if s.Presents > 0 && sum == s.sum {
		return nil
	}
	s.sum = sum
	s.view = s.Frame.String()
	s.Presents++
	return nil
}

func (s *Surface) View() string {
	return s.view
}

// Model is the bubbletea model. The loop is built on the first
// WindowSizeMsg, since that is when the grid size is known; later size
// changes are ignored.
type Model struct {
	config  *config.Config
	variant config.Variant
	status  bool

	queue   *render.KeyQueue
	surface *Surface
	loop    *render.Loop

	err      error
	quitting bool
}

func NewModel(cfg *config.Config, variant config.Variant, status bool) Model {
	return Model{
		config:  cfg,
		variant: variant,
		status:  status,
		queue:   &render.KeyQueue{},
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.config.Interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.loop != nil {
			return m, nil
		}
		height := msg.Height
		if m.status {
			height--
		}
		surface := NewSurface(msg.Width, height)
		loop, err := m.config.Loop(m.variant, surface, m.queue)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.surface = surface
		m.loop = loop
		log.Info().
			Int("width", msg.Width).
			Int("height", height).
			Str("variant", string(m.variant)).
			Msg("terminal surface ready")
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		m.queue.Push(render.Key(msg.String()))
		return m, nil

	case TickMsg:
		if m.loop == nil {
			return m, m.tick()
		}
		if err := m.surface.Clear(); err != nil {
			m.err = fmt.Errorf("clear frame: %w", err)
			return m, tea.Quit
		}
		done, err := m.loop.Frame(m.queue.Poll())
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		if done {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting || m.loop == nil {
		return ""
	}
	if !m.status {
		return m.surface.View()
	}
	status := fmt.Sprintf("%s  frame %d", m.loop.Scene.Status(), m.loop.Frames())
	return m.surface.View() + "\n" + statusStyle.Render(status)
}

// Err is the fatal error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run animates variant in the alternate screen until the quit key.
func Run(cfg *config.Config, variant config.Variant, status bool) error {
	program := tea.NewProgram(NewModel(cfg, variant, status), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	log.Info().Msg("terminal closed")
	return nil
}
