// Package midiin turns MIDI input into controller events and keeps a
// connection to a hardware keyboard across hot-plug.
package midiin

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/logger"
)

// RescanInterval is the minimum gap between device scans.
const RescanInterval = time.Second

// DefaultExcluded lists virtual and system ports that are never picked.
var DefaultExcluded = []string{"Midi Through", "Through Port", "Dummy"}

// Poster accepts events for the controller loop.
type Poster interface {
	Post(ev controller.Event) bool
}

// Translate maps a MIDI message onto a controller event. Note-ons with zero
// velocity arrive as note-offs.
func Translate(msg midi.Message) (controller.Event, bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return controller.NoteOn{Pitch: int(key), Velocity: int(vel)}, true
	case msg.GetNoteEnd(&ch, &key):
		return controller.NoteOff{Pitch: int(key)}, true
	}
	return nil, false
}

// Options selects which inputs the watcher connects to.
type Options struct {
	// Preferred patterns are tried first, case-insensitively.
	Preferred []string
	// Excluded patterns are never connected.
	Excluded []string
}

// Watcher scans the available inputs and keeps one of them connected.
// When the active device disappears it posts ReleaseAll so no key stays
// held.
type Watcher struct {
	mu           sync.Mutex
	drv          *rtmididrv.Driver
	opts         Options
	out          Poster
	log          *logger.Logger
	inPort       drivers.In
	stopFn       func()
	connected    bool
	selectedName string
	lastRescanAt time.Time
}

// NewWatcher initialises the rtmidi driver. Call Close when done.
func NewWatcher(out Poster, opts Options, log *logger.Logger) (*Watcher, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	if opts.Excluded == nil {
		opts.Excluded = DefaultExcluded
	}
	return &Watcher{drv: drv, opts: opts, out: out, log: log}, nil
}

// Close drops the active connection and shuts the driver down.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeConn()
	w.drv.Close()
}

// Connected returns the name of the connected input, if any.
func (w *Watcher) Connected() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedName, w.connected
}

// Tick rescans at most once per RescanInterval. It connects to a suitable
// input when idle and notices when the connected one goes away.
func (w *Watcher) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if !w.lastRescanAt.IsZero() && now.Sub(w.lastRescanAt) < RescanInterval {
		return
	}
	w.lastRescanAt = now

	inputs := Filter(w.inputNames(), w.opts.Excluded)

	if w.connected {
		for _, n := range inputs {
			if n == w.selectedName {
				return
			}
		}
		w.log.Warn("midi: device disappeared", "device", w.selectedName)
		w.disconnect()
		return
	}

	cand, ok := Pick(inputs, w.opts.Preferred)
	if !ok {
		return
	}
	if err := w.openByName(cand); err != nil {
		w.log.Error("midi: connect failed", "device", cand, "err", err)
	}
}

func (w *Watcher) inputNames() []string {
	ins, err := w.drv.Ins()
	if err != nil {
		w.log.Error("midi: list inputs failed", "err", err)
		return nil
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// disconnect must be called with mu held.
func (w *Watcher) disconnect() {
	w.closeConn()
	w.lastRescanAt = time.Time{}
	w.out.Post(controller.ReleaseAll{})
}

func (w *Watcher) closeConn() {
	if w.stopFn != nil {
		w.stopFn()
		w.stopFn = nil
	}
	if w.inPort != nil {
		_ = w.inPort.Close()
		w.inPort = nil
	}
	w.connected = false
	w.selectedName = ""
}

func (w *Watcher) openByName(name string) error {
	ins, err := w.drv.Ins()
	if err != nil {
		return err
	}
	var found drivers.In
	for _, in := range ins {
		if in.String() == name {
			found = in
			break
		}
	}
	if found == nil {
		return fmt.Errorf("input %q not found", name)
	}
	if err := found.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}

	stop, err := midi.ListenTo(found, func(msg midi.Message, _ int32) {
		if ev, ok := Translate(msg); ok {
			w.out.Post(ev)
			return
		}
		w.log.Debug("midi: unhandled message", "msg", msg.String())
	}, midi.HandleError(func(listenErr error) {
		w.log.Warn("midi: listener error", "device", name, "err", listenErr)
		// The listener goroutine must not tear down its own port.
		go func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if w.connected && w.selectedName == name {
				w.disconnect()
			}
		}()
	}))
	if err != nil {
		_ = found.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	w.inPort = found
	w.stopFn = stop
	w.connected = true
	w.selectedName = name
	w.log.Info("midi: connected", "device", name)
	return nil
}

// ListInputs returns the names of every MIDI input the driver can see.
func ListInputs() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	defer drv.Close()
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

// Filter drops inputs matching any excluded pattern.
func Filter(inputs, excluded []string) []string {
	var names []string
next:
	for _, name := range inputs {
		for _, pat := range excluded {
			if containsCI(name, pat) {
				continue next
			}
		}
		names = append(names, name)
	}
	return names
}

// Pick chooses the first input matching a preferred pattern, in pattern
// order. Without a match a lone input is picked.
func Pick(inputs, preferred []string) (string, bool) {
	for _, pat := range preferred {
		for _, name := range inputs {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(inputs) == 1 {
		return inputs[0], true
	}
	return "", false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
