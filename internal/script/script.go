// Package script reads scripted input for headless runs.
//
// One step per line:
//
//	on <pitch> [velocity]
//	off <pitch>
//	cmd <command line>
//	press <surface id>
//	back
//	release
//	wait <duration>
//
// Blank lines and lines starting with # are skipped.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/scene"
)

// DefaultVelocity is used by "on" lines without a velocity.
const DefaultVelocity = 100

var ErrSyntax = errors.New("script syntax error")

// Step is one parsed line: either an event to post or a pause.
type Step struct {
	Line  int
	Event controller.Event
	Wait  time.Duration
}

// Poster accepts events for the controller loop.
type Poster interface {
	Post(ev controller.Event) bool
}

// ParseFile reads a script from disk.
func ParseFile(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads every step from r.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		step, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		step.Line = n
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseLine(line string) (Step, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	fields := strings.Fields(rest)

	switch verb {
	case "on":
		if len(fields) < 1 || len(fields) > 2 {
			return Step{}, fmt.Errorf("%w: on takes a pitch and optional velocity", ErrSyntax)
		}
		pitch, err := atoi(fields[0])
		if err != nil {
			return Step{}, err
		}
		vel := DefaultVelocity
		if len(fields) == 2 {
			if vel, err = atoi(fields[1]); err != nil {
				return Step{}, err
			}
		}
		return Step{Event: controller.NoteOn{Pitch: pitch, Velocity: vel}}, nil
	case "off":
		if len(fields) != 1 {
			return Step{}, fmt.Errorf("%w: off takes a pitch", ErrSyntax)
		}
		pitch, err := atoi(fields[0])
		if err != nil {
			return Step{}, err
		}
		return Step{Event: controller.NoteOff{Pitch: pitch}}, nil
	case "cmd":
		if rest == "" {
			return Step{}, fmt.Errorf("%w: cmd needs a command line", ErrSyntax)
		}
		return Step{Event: controller.Command{Line: rest}}, nil
	case "press":
		if len(fields) != 1 {
			return Step{}, fmt.Errorf("%w: press takes a surface id", ErrSyntax)
		}
		id, err := atoi(fields[0])
		if err != nil {
			return Step{}, err
		}
		return Step{Event: controller.Activated{Surface: scene.ID(id)}}, nil
	case "back", "release":
		if len(fields) != 0 {
			return Step{}, fmt.Errorf("%w: %s takes no arguments", ErrSyntax, verb)
		}
		if verb == "back" {
			return Step{Event: controller.Back{}}, nil
		}
		return Step{Event: controller.ReleaseAll{}}, nil
	case "wait":
		if len(fields) != 1 {
			return Step{}, fmt.Errorf("%w: wait takes a duration", ErrSyntax)
		}
		d, err := time.ParseDuration(fields[0])
		if err != nil || d < 0 {
			return Step{}, fmt.Errorf("%w: bad duration %q", ErrSyntax, fields[0])
		}
		return Step{Wait: d}, nil
	}
	return Step{}, fmt.Errorf("%w: unknown verb %q", ErrSyntax, verb)
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrSyntax, s)
	}
	return n, nil
}

// Play posts the steps in order, sleeping through waits. It stops early when
// ctx is cancelled or the poster no longer accepts events.
func Play(ctx context.Context, steps []Step, out Poster) error {
	for _, s := range steps {
		if s.Event == nil {
			t := time.NewTimer(s.Wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			continue
		}
		if !out.Post(s.Event) {
			return fmt.Errorf("line %d: event queue closed", s.Line)
		}
	}
	return nil
}
