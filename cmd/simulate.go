package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pitchperfect/internal/activity"
	"github.com/abhisek/pitchperfect/internal/render/term"
	"github.com/abhisek/pitchperfect/internal/script"
	"github.com/abhisek/pitchperfect/internal/views"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <script>",
	Short: "Run an input script headless and print activity signals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := script.ParseFile(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		settle, _ := cmd.Flags().GetDuration("settle")
		screen, _ := cmd.Flags().GetBool("screen")

		surfaces := term.New(views.ScreenWidth, views.ScreenHeight)
		tr, err := newTrainer(cfg, log, surfaces)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		tr.ctrl.OnSignal(func(sig activity.Signal) {
			fmt.Fprintln(out, sig)
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		done := make(chan error, 1)
		go func() { done <- tr.loop.Run(ctx, tr.ctrl) }()

		playErr := script.Play(ctx, steps, tr.loop)
		if playErr == nil && settle > 0 {
			time.Sleep(settle)
		}
		// Let queued events finish before stopping.
		for tr.loop.Pending() > 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
		if err := <-done; err != nil {
			return err
		}
		if playErr != nil {
			return playErr
		}

		st := tr.ctrl.Status()
		fmt.Fprintf(out, "final: %s", st.State)
		if st.Title != "" {
			fmt.Fprintf(out, " %s card %d/%d", st.Title, st.Index+1, st.Total)
		}
		fmt.Fprintln(out)
		if screen {
			fmt.Fprintln(out, surfaces.Text(135, 40))
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().Duration("settle", 0, "Time to keep running after the last step, for pending timers")
	simulateCmd.Flags().Bool("screen", false, "Print a plain-text rendering of the final screen")
}
