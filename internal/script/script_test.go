package script

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/scene"
)

const sample = `
# first lesson
cmd loadLesson 0 2
on 60
on 64 80
off 60
wait 600ms
press 12
release
back
`

func TestParse(t *testing.T) {
	steps, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, steps, 8)

	assert.Equal(t, controller.Command{Line: "loadLesson 0 2"}, steps[0].Event)
	assert.Equal(t, 3, steps[0].Line)
	assert.Equal(t, controller.NoteOn{Pitch: 60, Velocity: DefaultVelocity}, steps[1].Event)
	assert.Equal(t, controller.NoteOn{Pitch: 64, Velocity: 80}, steps[2].Event)
	assert.Equal(t, controller.NoteOff{Pitch: 60}, steps[3].Event)
	assert.Nil(t, steps[4].Event)
	assert.Equal(t, 600*time.Millisecond, steps[4].Wait)
	assert.Equal(t, controller.Activated{Surface: scene.ID(12)}, steps[5].Event)
	assert.Equal(t, controller.ReleaseAll{}, steps[6].Event)
	assert.Equal(t, controller.Back{}, steps[7].Event)
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"on",
		"on 60 70 80",
		"on C4",
		"off",
		"cmd",
		"press",
		"press one",
		"back now",
		"wait",
		"wait soon",
		"wait -1s",
		"strum 60",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(strings.NewReader("# ok\n" + line))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

type recorder struct {
	events []controller.Event
	closed bool
}

func (r *recorder) Post(ev controller.Event) bool {
	if r.closed {
		return false
	}
	r.events = append(r.events, ev)
	return true
}

func TestPlay(t *testing.T) {
	steps, err := Parse(strings.NewReader("on 60\nwait 1ms\noff 60"))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, Play(context.Background(), steps, rec))
	assert.Equal(t, []controller.Event{
		controller.NoteOn{Pitch: 60, Velocity: DefaultVelocity},
		controller.NoteOff{Pitch: 60},
	}, rec.events)
}

func TestPlayStops(t *testing.T) {
	steps, err := Parse(strings.NewReader("wait 1h\non 60"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Play(ctx, steps, &recorder{}), context.Canceled)

	steps, err = Parse(strings.NewReader("on 60"))
	require.NoError(t, err)
	assert.Error(t, Play(context.Background(), steps, &recorder{closed: true}))
}
