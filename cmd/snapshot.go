package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pitchperfect/internal/controller"
	"github.com/abhisek/pitchperfect/internal/logger"
	"github.com/abhisek/pitchperfect/internal/render/snapshot"
	"github.com/abhisek/pitchperfect/internal/views"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <out.png>",
	Short: "Render the screen to PNG after running commands",
	Long: `Render the screen to PNG after running commands.

Commands run in order, e.g.
  pitchperfect snapshot lesson.png --command "loadLesson 0 2" --play 60
plays middle C on the first card of lesson 0 and captures the feedback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		commands, _ := cmd.Flags().GetStringArray("command")
		play, _ := cmd.Flags().GetIntSlice("play")

		r, err := snapshot.New(views.ScreenWidth, views.ScreenHeight)
		if err != nil {
			return err
		}
		tr, err := newTrainer(cfg, logger.Nop(), r)
		if err != nil {
			return err
		}

		// Timers never fire here; only the immediate effect is captured.
		for _, line := range commands {
			tr.ctrl.Handle(controller.Command{Line: line})
		}
		for _, p := range play {
			tr.ctrl.Handle(controller.NoteOn{Pitch: p, Velocity: 100})
		}
		for _, p := range play {
			tr.ctrl.Handle(controller.NoteOff{Pitch: p})
		}

		if err := r.SavePNG(args[0]); err != nil {
			return err
		}
		fmt.Println("wrote", args[0])
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringArray("command", nil, "Command line to execute before rendering (repeatable)")
	snapshotCmd.Flags().IntSlice("play", nil, "Pitches to play as one chord after the commands")
}
