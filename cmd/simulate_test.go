package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateLessonScript(t *testing.T) {
	t.Setenv("PITCHPERFECT_FEEDBACK_DWELL", "20ms")
	dir := t.TempDir()
	path := filepath.Join(dir, "lesson.txt")
	require.NoError(t, os.WriteFile(path, []byte(`
# first card right, second wrong
cmd loadLesson 0 2
on 60
off 60
wait 200ms
on 61
off 61
`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"simulate", path, "--no-midi", "--log-file", filepath.Join(dir, "log")})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"flashcard-shown lesson 0: 1/15 card 0 [60] (treble, right hand)",
		"verdict lesson 0: correct=true input=[60]",
		"flashcard-shown lesson 0: 2/15 card 1 [62] (treble, right hand)",
		"verdict lesson 0: correct=false input=[61]",
		"final: in-lesson Lesson 1 card 2/15",
	}, lines)
}
