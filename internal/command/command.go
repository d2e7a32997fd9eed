// Package command parses the textual command lines carried by buttons and
// accepted from scripts.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownVerb marks a line whose verb is not recognised. Callers
	// ignore such lines.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrMalformed marks a known verb with the wrong arguments.
	ErrMalformed = errors.New("malformed command")
)

// Verb is a command name.
type Verb string

const (
	ShowHomePage            Verb = "showHomePage"
	ShowUnitSelection       Verb = "showUnitSelection"
	ShowLessonSelection     Verb = "showLessonSelection"
	ShowLessonComplete      Verb = "showLessonComplete"
	ShowDrillComplete       Verb = "showDrillComplete"
	ShowReviewDrillComplete Verb = "showReviewDrillComplete"
	LoadLesson              Verb = "loadLesson"
	LoadDrill               Verb = "loadDrill"
	Back                    Verb = "back"
)

var arity = map[Verb]int{
	ShowHomePage:            1,
	ShowUnitSelection:       1,
	ShowLessonSelection:     1,
	ShowLessonComplete:      1,
	ShowDrillComplete:       1,
	ShowReviewDrillComplete: 1,
	LoadLesson:              2,
	LoadDrill:               2,
	Back:                    0,
}

// Command is a parsed command line.
type Command struct {
	Verb Verb
	Args []int
}

// Arg returns the i-th argument.
func (c Command) Arg(i int) int { return c.Args[i] }

func (c Command) String() string {
	parts := []string{string(c.Verb)}
	for _, a := range c.Args {
		parts = append(parts, strconv.Itoa(a))
	}
	return strings.Join(parts, " ")
}

// Parse splits line into a verb and integer arguments.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrMalformed)
	}
	verb := Verb(fields[0])
	want, ok := arity[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownVerb, fields[0])
	}
	if got := len(fields) - 1; got != want {
		return Command{}, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrMalformed, verb, want, got)
	}

	cmd := Command{Verb: verb, Args: make([]int, 0, want)}
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %s argument %q is not an integer", ErrMalformed, verb, f)
		}
		cmd.Args = append(cmd.Args, n)
	}
	return cmd, nil
}
