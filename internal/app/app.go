package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/bep/debounce"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/keyboard"
	"github.com/abhisek/pitchperfect/internal/notation"
	"github.com/abhisek/pitchperfect/internal/render/term"
	"github.com/abhisek/pitchperfect/internal/scene"
	"github.com/abhisek/pitchperfect/internal/ui/layout"
)

// DefaultRedrawDelay coalesces bursts of controller events into one frame.
const DefaultRedrawDelay = 15 * time.Millisecond

// keyVelocity is the velocity of notes played on the computer keyboard.
const keyVelocity = 100

// Poster accepts events for the controller loop.
type Poster interface {
	Post(ev controller.Event) bool
}

// RedrawMsg carries the controller status after a batch of events.
type RedrawMsg struct {
	Status controller.Status
}

// AppModel is the root Bubble Tea model. It turns key presses into
// controller events and draws the surfaces the controller maintains.
type AppModel struct {
	out      Poster
	surfaces *term.Renderer
	piano    *keyboard.Piano
	keys     keyMap

	status controller.Status
	focus  scene.ID
	width  int
	height int
}

// New creates the model. Events go to out; frames come from surfaces.
func New(out Poster, surfaces *term.Renderer, piano *keyboard.Piano) AppModel {
	return AppModel{
		out:      out,
		surfaces: surfaces,
		piano:    piano,
		keys:     defaultKeyMap(),
		focus:    scene.NoID,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RedrawMsg:
		m.status = msg.Status
		m.focus = m.focused(0)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.out.Post(controller.Back{})
	case key.Matches(msg, m.keys.Next):
		m.focus = m.focused(1)
	case key.Matches(msg, m.keys.Prev):
		m.focus = m.focused(-1)
	case key.Matches(msg, m.keys.Select):
		if id := m.focused(0); id != scene.NoID {
			m.focus = id
			m.out.Post(controller.Activated{Surface: id})
		}
	case key.Matches(msg, m.keys.Release):
		for _, p := range m.piano.ReleaseAll() {
			m.out.Post(controller.NoteOff{Pitch: p})
		}
	case key.Matches(msg, m.keys.OctaveDown):
		m.piano.Shift(-1)
	case key.Matches(msg, m.keys.OctaveUp):
		m.piano.Shift(1)
	default:
		if pitch, ok := m.piano.Press(msg.String()); ok {
			m.out.Post(controller.NoteOn{Pitch: pitch, Velocity: keyVelocity})
		}
	}
	return m, nil
}

// focused returns the button step places away from the current focus. The
// first visible button takes over when the focused one is gone.
func (m AppModel) focused(step int) scene.ID {
	buttons := m.surfaces.Buttons()
	if len(buttons) == 0 {
		return scene.NoID
	}
	cur := -1
	for i, b := range buttons {
		if b.ID == m.focus {
			cur = i
			break
		}
	}
	if cur < 0 {
		return buttons[0].ID
	}
	n := len(buttons)
	return buttons[((cur+step)%n+n)%n].ID
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.title(), m.progress(), m.width)

	var footerHints []layout.KeyHint
	if m.status.State != activity.Idle {
		footerHints = append(hints(m.keys.Release, m.keys.OctaveDown, m.keys.Back, m.keys.Quit),
			layout.KeyHint{Key: "a–'", Description: "Play from " + notation.PitchName(m.pianoBase())})
	} else {
		footerHints = hints(m.keys.Next, m.keys.Select, m.keys.Back, m.keys.Quit)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.surfaces.Render(m.width, contentHeight, m.focused(0))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) pianoBase() int {
	pitch, _ := m.piano.Lookup("a")
	return pitch
}

func (m AppModel) title() string {
	if m.status.Title != "" {
		return m.status.Title
	}
	return "Main Menu"
}

func (m AppModel) progress() string {
	s := m.status
	if s.State == activity.Idle {
		return ""
	}
	parts := []string{fmt.Sprintf("%d/%d", s.Index+1, s.Total)}
	if s.State == activity.InDrill {
		parts = append(parts, fmt.Sprintf("✘ %d", s.Missed))
		if s.Remaining > 0 {
			secs := int(s.Remaining / time.Second)
			parts = append(parts, fmt.Sprintf("%d:%02d", secs/60, secs%60))
		}
	}
	if len(s.Held) > 0 {
		names := make([]string, len(s.Held))
		for i, p := range s.Held {
			names[i] = notation.PitchName(p)
		}
		parts = append(parts, "♪ "+strings.Join(names, " "))
	}
	return strings.Join(parts, "   ")
}

// Notifier forwards controller status to a running program, coalescing
// bursts with a debounce.
type Notifier struct {
	debounced func(f func())

	mu     sync.Mutex
	status controller.Status
	send   func(tea.Msg)
}

// NewNotifier creates a notifier that waits delay after the last Notify.
func NewNotifier(delay time.Duration) *Notifier {
	return &Notifier{debounced: debounce.New(delay)}
}

// Attach sets where redraws go, normally Program.Send.
func (n *Notifier) Attach(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

// Notify records st and schedules a redraw.
func (n *Notifier) Notify(st controller.Status) {
	n.mu.Lock()
	n.status = st
	n.mu.Unlock()
	n.debounced(n.flush)
}

func (n *Notifier) flush() {
	n.mu.Lock()
	send, st := n.send, n.status
	n.mu.Unlock()
	if send != nil {
		send(RedrawMsg{Status: st})
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx ends.
func Run(ctx context.Context, m AppModel, n *Notifier) error {
	p := tea.NewProgram(m, tea.WithContext(ctx))
	n.Attach(p.Send)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
